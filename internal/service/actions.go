package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"tempmon_dashboard/internal/apiclient"
	"tempmon_dashboard/internal/logger"
	"tempmon_dashboard/internal/models"
	"tempmon_dashboard/internal/observability"
	"tempmon_dashboard/internal/render"
	"tempmon_dashboard/internal/repository"
)

var (
	ErrUnknownAction        = errors.New("unknown action")
	ErrMissingField         = errors.New("missing required field")
	ErrConfirmationRequired = errors.New("action requires confirmation")
	ErrUnknownCallback      = errors.New("unknown action callback")
)

// Journal outcomes.
const (
	journalSuccess  = "SUCCESS"
	journalFailure  = "FAILURE"
	journalPreview  = "PREVIEW"
	journalRejected = "REJECTED"
)

// Patch kinds applied by the page after a successful action.
const (
	PatchText      = "text"
	PatchRemove    = "remove"
	PatchReload    = "reload"
	PatchShowToken = "show_token"
)

// Patch is a minimal DOM change implied by an action's result.
type Patch struct {
	Kind     string `json:"kind"`
	Selector string `json:"selector,omitempty"`
	Value    string `json:"value,omitempty"`
	DelayMS  int64  `json:"delay_ms,omitempty"`
}

// Form is a submitted form, flattened to field name and value.
type Form map[string]string

// Confirmed reports whether the user confirmed a destructive action.
func (f Form) Confirmed() bool {
	switch strings.ToLower(strings.TrimSpace(f["confirm"])) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

// body is the flat JSON object sent to the backend: every field except the
// ones consumed by the path and the confirm flag.
func (f Form) body(consumed map[string]bool) map[string]string {
	out := make(map[string]string, len(f))
	for k, v := range f {
		if k == "confirm" || consumed[k] {
			continue
		}
		out[k] = v
	}
	return out
}

// Action binds one admin form to one backend call.
type Action struct {
	Name        string
	Method      string
	Path        string // "{field}" segments are taken from the form
	Required    []string
	Confirm     string // prompt shown before a destructive call; empty when none
	Success     string
	Failure     string // prefixed to the error text
	Callback    string // key into Callbacks
	ReloadAfter time.Duration
	Preview     bool // no network call, an info banner only
}

// Callback derives the DOM patches of a successful action. An error means
// the backend accepted the call but its answer cannot be shown.
type Callback func(a Action, form Form, res *apiclient.Result) ([]Patch, error)

type (
	Registry  map[string]Action
	Callbacks map[string]Callback
)

// Callback names.
const (
	CallbackReload         = "reload"
	CallbackShowToken      = "showToken"
	CallbackRemoveTokenRow = "removeTokenRow"
	CallbackCustomerName   = "customerName"
	CallbackFacilityName   = "facilityName"
	CallbackUnitName       = "unitName"
	CallbackConfigValue    = "configValue"
)

const (
	shortReload = 1500 * time.Millisecond
	tokenReload = 5 * time.Second
)

// DefaultRegistry lists the admin actions served by the dashboard.
func DefaultRegistry() Registry {
	actions := []Action{
		{
			Name: "customer.create", Method: http.MethodPost, Path: "/admin/customers",
			Required: []string{"name"},
			Success:  "Customer created successfully!", Failure: "Error creating customer",
			Callback: CallbackReload, ReloadAfter: shortReload,
		},
		{
			Name: "customer.update", Method: http.MethodPut, Path: "/admin/customers/{customer_id}",
			Success: "Customer updated successfully!", Failure: "Error updating customer",
			Callback: CallbackCustomerName,
		},
		{
			Name: "token.create", Method: http.MethodPost, Path: "/admin/customers/{customer_id}/tokens",
			Success: "Token created successfully!", Failure: "Error creating token",
			Callback: CallbackShowToken, ReloadAfter: tokenReload,
		},
		{
			Name: "token.revoke", Method: http.MethodDelete, Path: "/admin/customers/{customer_id}/tokens/{token_id}",
			Confirm: "Are you sure you want to revoke this token? This action cannot be undone.",
			Success: "Token revoked successfully!", Failure: "Error revoking token",
			Callback: CallbackRemoveTokenRow,
		},
		{
			Name: "facility.create", Method: http.MethodPost, Path: "/admin/facilities",
			Required: []string{"name"},
			Success:  "Facility created successfully!", Failure: "Error creating facility",
			Callback: CallbackReload, ReloadAfter: shortReload,
		},
		{
			Name: "facility.update", Method: http.MethodPut, Path: "/admin/facilities/{facility_id}",
			Success: "Facility updated successfully!", Failure: "Error updating facility",
			Callback: CallbackFacilityName,
		},
		{
			Name: "unit.create", Method: http.MethodPost, Path: "/admin/facilities/{facility_id}/units",
			Required: []string{"name"},
			Success:  "Storage unit created successfully!", Failure: "Error creating storage unit",
			Callback: CallbackReload, ReloadAfter: shortReload,
		},
		{
			Name: "unit.update", Method: http.MethodPut, Path: "/admin/units/{unit_id}",
			Success: "Storage unit updated successfully!", Failure: "Error updating storage unit",
			Callback: CallbackUnitName,
		},
		{
			Name: "config.update", Method: http.MethodPut, Path: "/admin/config/{config_key}",
			Success: "Configuration updated successfully!", Failure: "Error updating configuration",
			Callback: CallbackConfigValue,
		},
		{
			Name: "ml.configure", Preview: true,
			Success: "ML feature is currently in preview. This functionality will be available in the future.",
		},
		{
			Name: "ml.train", Preview: true,
			Success: "ML training is currently in preview. This functionality will be available in the future.",
		},
	}

	r := make(Registry, len(actions))
	for _, a := range actions {
		r[a.Name] = a
	}
	return r
}

// DefaultCallbacks is the explicit callback table the registry refers to.
func DefaultCallbacks() Callbacks {
	return Callbacks{
		CallbackReload:         reloadPatch,
		CallbackShowToken:      showTokenPatch,
		CallbackRemoveTokenRow: removeRowPatch("#token-row-", "token_id"),
		CallbackCustomerName:   textPatch(".customer-name-", "customer_id", "name"),
		CallbackFacilityName:   textPatch(".facility-name-", "facility_id", "name", "facility_code"),
		CallbackUnitName:       textPatch(".unit-name-", "unit_id", "name", "unit_code"),
		CallbackConfigValue:    textPatch(".config-value-", "config_key", "value"),
	}
}

// Validate checks that every callback the registry names exists.
func (r Registry) Validate(cbs Callbacks) error {
	var missing []string
	for name, a := range r {
		if a.Callback == "" {
			continue
		}
		if _, ok := cbs[a.Callback]; !ok {
			missing = append(missing, name+"->"+a.Callback)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrUnknownCallback, strings.Join(missing, ", "))
	}
	return nil
}

func reloadPatch(a Action, _ Form, _ *apiclient.Result) ([]Patch, error) {
	return []Patch{{Kind: PatchReload, DelayMS: a.ReloadAfter.Milliseconds()}}, nil
}

func showTokenPatch(a Action, f Form, res *apiclient.Result) ([]Patch, error) {
	var created models.Record
	if err := res.Decode(&created); err != nil {
		return nil, fmt.Errorf("read created token: %w", err)
	}
	value := created.String("token_value")
	if value == "" {
		value = created.String("token")
	}
	patches := []Patch{}
	if value != "" {
		patches = append(patches, Patch{Kind: PatchShowToken, Selector: "#newTokenValue", Value: value})
	}
	reload, _ := reloadPatch(a, f, res)
	return append(patches, reload...), nil
}

func removeRowPatch(prefix, idField string) Callback {
	return func(_ Action, f Form, _ *apiclient.Result) ([]Patch, error) {
		return []Patch{{Kind: PatchRemove, Selector: prefix + render.ClassToken(f[idField])}}, nil
	}
}

// textPatch sets the text of prefix+id to the first non-empty value field.
func textPatch(prefix, idField string, valueFields ...string) Callback {
	return func(_ Action, f Form, _ *apiclient.Result) ([]Patch, error) {
		value := ""
		for _, k := range valueFields {
			if v := f[k]; v != "" {
				value = v
				break
			}
		}
		return []Patch{{Kind: PatchText, Selector: prefix + render.ClassToken(f[idField]), Value: value}}, nil
	}
}

// Outcome is what the page gets back from a dispatched action.
type Outcome struct {
	Action  string          `json:"action"`
	Level   string          `json:"level"`
	Message string          `json:"message"`
	Status  int             `json:"status,omitempty"`
	Patches []Patch         `json:"patches,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ActionAPI is the backend surface the actions call.
type ActionAPI interface {
	Do(ctx context.Context, method, route, path string, body map[string]string) (*apiclient.Result, error)
}

type ActionService struct {
	api       ActionAPI
	registry  Registry
	callbacks Callbacks
	journal   repository.ActionRepo
	board     *Board
	metrics   *observability.Metrics
	log       *logger.Logger
}

func NewActionService(
	api ActionAPI,
	registry Registry,
	callbacks Callbacks,
	journal repository.ActionRepo,
	board *Board,
	metrics *observability.Metrics,
	log *logger.Logger,
) *ActionService {
	return &ActionService{
		api:       api,
		registry:  registry,
		callbacks: callbacks,
		journal:   journal,
		board:     board,
		metrics:   metrics,
		log:       log,
	}
}

func (s *ActionService) Lookup(name string) (Action, bool) {
	a, ok := s.registry[name]
	return a, ok
}

// Dispatch runs the named action with the submitted form. Validation and
// confirmation failures return before any request is sent. Backend
// failures post a danger banner and return the outcome with the error.
func (s *ActionService) Dispatch(ctx context.Context, sessionID, name string, form Form) (*Outcome, error) {
	a, ok := s.registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	cb, ok := s.callbacks[a.Callback]
	if a.Callback != "" && !ok {
		return nil, fmt.Errorf("%w: %s->%s", ErrUnknownCallback, a.Name, a.Callback)
	}

	if a.Preview {
		s.board.Post(sessionID, models.LevelInfo, a.Success, true)
		s.record(ctx, a, journalPreview, a.Success, nil)
		s.metrics.Action(a.Name, observability.OutcomePreview)
		return &Outcome{Action: a.Name, Level: models.LevelInfo, Message: a.Success}, nil
	}

	path, consumed, err := expandPath(a.Path, form)
	if err == nil {
		err = requireFields(a.Required, form)
	}
	if err == nil && a.Confirm != "" && !form.Confirmed() {
		err = ErrConfirmationRequired
	}
	if err != nil {
		s.record(ctx, a, journalRejected, err.Error(), pathFields(consumed, form))
		s.metrics.Action(a.Name, observability.OutcomeBlocked)
		return nil, err
	}

	var body map[string]string
	if a.Method != http.MethodDelete {
		body = form.body(consumed)
	}

	res, err := s.api.Do(ctx, a.Method, a.Path, path, body)
	if err != nil {
		return s.fail(ctx, sessionID, a, consumed, form, apiclient.StatusOf(err), err, fmt.Errorf("%s %s: %w", a.Method, path, err))
	}

	var patches []Patch
	if cb != nil {
		if patches, err = cb(a, form, res); err != nil {
			return s.fail(ctx, sessionID, a, consumed, form, res.Status, err, err)
		}
	}
	s.board.Post(sessionID, models.LevelSuccess, a.Success, true)
	s.record(ctx, a, journalSuccess, a.Success, pathFields(consumed, form))
	s.metrics.Action(a.Name, observability.OutcomeOK)

	return &Outcome{
		Action:  a.Name,
		Level:   models.LevelSuccess,
		Message: a.Success,
		Status:  res.Status,
		Patches: patches,
		Data:    res.JSON,
	}, nil
}

// fail posts the danger banner of a failed call and journals it. The
// banner shows cause; err is what Dispatch returns.
func (s *ActionService) fail(ctx context.Context, sessionID string, a Action, consumed map[string]bool, form Form, status int, cause, err error) (*Outcome, error) {
	msg := a.Failure + ": " + cause.Error()
	s.board.Post(sessionID, models.LevelDanger, msg, true)
	s.record(ctx, a, journalFailure, msg, pathFields(consumed, form))
	s.metrics.Action(a.Name, observability.OutcomeFailed)
	return &Outcome{
		Action:  a.Name,
		Level:   models.LevelDanger,
		Message: msg,
		Status:  status,
	}, err
}

func (s *ActionService) record(ctx context.Context, a Action, outcome, msg string, meta map[string]string) {
	if s.journal == nil {
		return
	}
	ev := models.ActionEvent{
		OccurredAt:  time.Now().UTC(),
		Type:        a.Name,
		Outcome:     outcome,
		Description: msg,
	}
	if len(meta) > 0 {
		ev.Metadata = meta
	}
	if err := s.journal.Append(ctx, ev); err != nil && s.log != nil {
		s.log.Errorw("action_journal_append_failed", "action", a.Name, "err", err)
	}
}

var pathParam = regexp.MustCompile(`\{([a-z_]+)\}`)

// expandPath fills "{field}" segments from the form and reports which
// fields it consumed.
func expandPath(tmpl string, form Form) (string, map[string]bool, error) {
	consumed := map[string]bool{}
	var missing []string
	path := pathParam.ReplaceAllStringFunc(tmpl, func(m string) string {
		field := m[1 : len(m)-1]
		consumed[field] = true
		v := strings.TrimSpace(form[field])
		if v == "" {
			missing = append(missing, field)
			return m
		}
		return url.PathEscape(v)
	})
	if len(missing) > 0 {
		return "", consumed, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return path, consumed, nil
}

func requireFields(fields []string, form Form) error {
	for _, f := range fields {
		if strings.TrimSpace(form[f]) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f)
		}
	}
	return nil
}

func pathFields(consumed map[string]bool, form Form) map[string]string {
	out := make(map[string]string, len(consumed))
	for k := range consumed {
		if v := form[k]; v != "" {
			out[k] = v
		}
	}
	return out
}
