package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"tempmon_dashboard/internal/apiclient"
	"tempmon_dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActionFixture(api *fakeActionAPI) (*ActionService, *fakeJournal, *Board) {
	journal := &fakeJournal{}
	board := NewBoard(time.Minute)
	svc := NewActionService(api, DefaultRegistry(), DefaultCallbacks(), journal, board, nil, nil)
	return svc, journal, board
}

func TestDefaultRegistry_CallbacksResolve(t *testing.T) {
	require.NoError(t, DefaultRegistry().Validate(DefaultCallbacks()))

	bad := Registry{"x.y": {Name: "x.y", Callback: "nope"}}
	err := bad.Validate(DefaultCallbacks())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCallback)
	assert.Contains(t, err.Error(), "x.y->nope")
}

func TestDispatch_UnknownCallbackSendsNothing(t *testing.T) {
	api := &fakeActionAPI{}
	reg := Registry{"x.y": {Name: "x.y", Method: http.MethodPost, Path: "/admin/x", Callback: "nope"}}
	svc := NewActionService(api, reg, DefaultCallbacks(), &fakeJournal{}, NewBoard(time.Minute), nil, nil)

	_, err := svc.Dispatch(context.Background(), "s1", "x.y", Form{})
	require.ErrorIs(t, err, ErrUnknownCallback)
	assert.Empty(t, api.Calls())
}

func TestForm_Confirmed(t *testing.T) {
	for in, want := range map[string]bool{
		"true": true, "1": true, "YES": true, "on": true,
		"": false, "false": false, "0": false, "maybe": false,
	} {
		assert.Equal(t, want, Form{"confirm": in}.Confirmed(), in)
	}
}

func TestDispatch_TokenRevokeNeedsConfirmation(t *testing.T) {
	api := &fakeActionAPI{}
	svc, journal, board := newActionFixture(api)
	form := Form{"customer_id": "7", "token_id": "3"}

	_, err := svc.Dispatch(context.Background(), "s1", "token.revoke", form)
	require.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Empty(t, api.Calls(), "no request may be sent before confirmation")
	assert.Equal(t, journalRejected, journal.last().Outcome)
	assert.Empty(t, board.Active("s1"))

	form["confirm"] = "true"
	out, err := svc.Dispatch(context.Background(), "s1", "token.revoke", form)
	require.NoError(t, err)

	calls := api.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodDelete, calls[0].Method)
	assert.Equal(t, "/admin/customers/7/tokens/3", calls[0].Path)
	assert.Equal(t, "/admin/customers/{customer_id}/tokens/{token_id}", calls[0].Route)
	assert.Nil(t, calls[0].Body)

	assert.Equal(t, []Patch{{Kind: PatchRemove, Selector: "#token-row-3"}}, out.Patches)
	assert.Equal(t, models.LevelSuccess, out.Level)
	assert.Equal(t, "Token revoked successfully!", out.Message)

	last := journal.last()
	assert.Equal(t, "token.revoke", last.Type)
	assert.Equal(t, journalSuccess, last.Outcome)
	assert.Equal(t, map[string]string{"customer_id": "7", "token_id": "3"}, last.Metadata)
}

func TestDispatch_CreateSendsFlatBody(t *testing.T) {
	api := &fakeActionAPI{}
	svc, _, board := newActionFixture(api)

	out, err := svc.Dispatch(context.Background(), "s1", "customer.create", Form{
		"name": "Acme", "customer_code": "ACME", "confirm": "on",
	})
	require.NoError(t, err)

	calls := api.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/admin/customers", calls[0].Path)
	assert.Equal(t, map[string]string{"name": "Acme", "customer_code": "ACME"}, calls[0].Body)
	assert.Equal(t, []Patch{{Kind: PatchReload, DelayMS: 1500}}, out.Patches)

	active := board.Active("s1")
	require.Len(t, active, 1)
	assert.Equal(t, "Customer created successfully!", active[0].Message)
}

func TestDispatch_UpdatePatchesTextInPlace(t *testing.T) {
	api := &fakeActionAPI{}
	svc, _, _ := newActionFixture(api)

	out, err := svc.Dispatch(context.Background(), "s1", "facility.update", Form{
		"facility_id": "12", "facility_code": "NORTH",
	})
	require.NoError(t, err)
	assert.Equal(t, "/admin/facilities/12", api.Calls()[0].Path)
	assert.Equal(t, map[string]string{"facility_code": "NORTH"}, api.Calls()[0].Body)
	assert.Equal(t, []Patch{{Kind: PatchText, Selector: ".facility-name-12", Value: "NORTH"}}, out.Patches)
}

func TestDispatch_TokenCreateShowsTokenOnce(t *testing.T) {
	api := &fakeActionAPI{res: &apiclient.Result{Status: http.StatusCreated, JSON: []byte(`{"token_value":"tok-abc"}`)}}
	svc, _, _ := newActionFixture(api)

	out, err := svc.Dispatch(context.Background(), "s1", "token.create", Form{"customer_id": "7", "description": "ci"})
	require.NoError(t, err)
	assert.Equal(t, "/admin/customers/7/tokens", api.Calls()[0].Path)
	assert.Equal(t, map[string]string{"description": "ci"}, api.Calls()[0].Body)
	assert.Equal(t, []Patch{
		{Kind: PatchShowToken, Selector: "#newTokenValue", Value: "tok-abc"},
		{Kind: PatchReload, DelayMS: 5000},
	}, out.Patches)
	assert.Equal(t, http.StatusCreated, out.Status)
}

func TestDispatch_TokenCreateUnreadableAnswer(t *testing.T) {
	api := &fakeActionAPI{res: &apiclient.Result{Status: http.StatusCreated, Text: "created"}}
	svc, journal, board := newActionFixture(api)

	out, err := svc.Dispatch(context.Background(), "s1", "token.create", Form{"customer_id": "7"})
	require.Error(t, err)
	require.NotNil(t, out)
	assert.Equal(t, models.LevelDanger, out.Level)
	assert.Contains(t, out.Message, "Error creating token: read created token")
	assert.Empty(t, out.Patches)
	assert.Equal(t, journalFailure, journal.last().Outcome)

	active := board.Active("s1")
	require.Len(t, active, 1)
	assert.Equal(t, models.LevelDanger, active[0].Level)
}

func TestDispatch_Validation(t *testing.T) {
	api := &fakeActionAPI{}
	svc, journal, _ := newActionFixture(api)

	_, err := svc.Dispatch(context.Background(), "s1", "customer.create", Form{"name": "  "})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = svc.Dispatch(context.Background(), "s1", "unit.update", Form{"name": "x"})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = svc.Dispatch(context.Background(), "s1", "does.not.exist", Form{})
	assert.ErrorIs(t, err, ErrUnknownAction)

	assert.Empty(t, api.Calls())
	assert.Len(t, journal.appended, 2)
}

func TestDispatch_PathSegmentsAreEscaped(t *testing.T) {
	api := &fakeActionAPI{}
	svc, _, _ := newActionFixture(api)

	_, err := svc.Dispatch(context.Background(), "s1", "config.update", Form{"config_key": "a/b c", "value": "1"})
	require.NoError(t, err)
	assert.Equal(t, "/admin/config/a%2Fb%20c", api.Calls()[0].Path)
}

func TestDispatch_BackendFailure(t *testing.T) {
	api := &fakeActionAPI{err: &apiclient.APIError{Status: http.StatusConflict, Message: "code already used"}}
	svc, journal, board := newActionFixture(api)

	out, err := svc.Dispatch(context.Background(), "s1", "customer.create", Form{"name": "Acme"})
	require.Error(t, err)
	var apiErr *apiclient.APIError
	assert.True(t, errors.As(err, &apiErr))

	require.NotNil(t, out)
	assert.Equal(t, models.LevelDanger, out.Level)
	assert.Equal(t, "Error creating customer: code already used", out.Message)
	assert.Equal(t, http.StatusConflict, out.Status)
	assert.Empty(t, out.Patches)
	assert.Equal(t, journalFailure, journal.last().Outcome)

	active := board.Active("s1")
	require.Len(t, active, 1)
	assert.Equal(t, models.LevelDanger, active[0].Level)
}

func TestDispatch_PreviewMakesNoCall(t *testing.T) {
	api := &fakeActionAPI{}
	svc, journal, board := newActionFixture(api)

	out, err := svc.Dispatch(context.Background(), "s1", "ml.train", Form{"model": "lstm"})
	require.NoError(t, err)
	assert.Empty(t, api.Calls())
	assert.Equal(t, models.LevelInfo, out.Level)
	assert.Equal(t, journalPreview, journal.last().Outcome)
	assert.Len(t, board.Active("s1"), 1)
}
