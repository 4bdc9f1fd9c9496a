package render

const baseTemplates = `
{{define "banners"}}{{range .}}<div class="alert alert-{{.Level}}{{if .Dismissible}} alert-dismissible{{end}} fade show" role="alert" data-notice-id="{{.ID}}" data-expires="{{.ExpiresAt.UnixMilli}}">
  {{if eq .Level "danger"}}<strong>Error:</strong> {{end}}{{.Message}}
  {{if .Dismissible}}<button type="button" class="btn-close" data-bs-dismiss="alert" aria-label="Close"></button>{{end}}
</div>{{end}}{{end}}

{{define "chart"}}{{if .}}<canvas id="{{.ID}}" data-generation="{{.Generation}}" data-chart="{{.Data.JSON}}"></canvas>{{end}}{{end}}

{{define "temps_rows"}}{{if not .Loaded}}<tr>
  <td colspan="5" class="text-center">
    <div class="spinner-border spinner-border-sm text-primary me-2" role="status"><span class="visually-hidden">Loading...</span></div>
    Loading temperature data...
  </td>
</tr>{{else}}{{range .Rows}}<tr data-unit-id="{{.UnitID}}" class="unit-row" style="cursor: pointer">
  <td>{{.Name}}</td>
  <td>{{.Facility}}</td>
  <td{{if .Deviation}} class="temp-{{.Deviation}}"{{end}}>{{.Temperature}}</td>
  <td><span class="badge {{.Badge.Class}}">{{.Badge.Label}}</span></td>
  <td>{{.Updated}}</td>
</tr>{{else}}<tr><td colspan="5" class="text-center">No temperature data available</td></tr>{{end}}{{end}}{{end}}

{{define "facilities"}}{{if not .Loaded}}<div class="col-12 text-center">
  <div class="spinner-border text-primary mb-3" role="status"><span class="visually-hidden">Loading...</span></div>
  <p>Loading facilities data...</p>
</div>{{else}}{{range .Facilities}}<div class="col-md-4 mb-4">
  <div class="card h-100">
    <div class="card-header"><h5 class="card-title mb-0">{{.Name}}</h5></div>
    <div class="card-body">
      <p><strong>Location:</strong> {{.Location}}</p>
      <p><strong>Units:</strong> {{.Units}}</p>
    </div>
    <div class="card-footer">
      <button class="btn btn-sm btn-primary view-facility-btn" data-facility-id="{{.ID}}"><i class="bi bi-eye"></i> View Details</button>
    </div>
  </div>
</div>{{else}}<div class="col-12 text-center">No facilities available</div>{{end}}{{end}}{{end}}

{{define "alerts"}}{{if not .Loaded}}<div class="text-center">
  <div class="spinner-border spinner-border-sm text-primary me-2" role="status"><span class="visually-hidden">Loading...</span></div>
  Loading alerts...
</div>{{else}}{{template "alert_items" .Alerts}}{{end}}{{end}}

{{define "alert_items"}}{{range .}}<div class="alert-item {{.Severity}}{{if .Resolved}} resolved{{end}}">
  <div class="d-flex justify-content-between align-items-start">
    <div>
      <strong>{{.Title}}{{if .Resolved}} <span class="badge bg-secondary ms-2">Resolved</span>{{end}}</strong>
      <div>{{.Message}}</div>
    </div>
    <span class="alert-time">{{.TimeAgo}}</span>
  </div>
</div>{{else}}<div class="text-center text-muted">No alerts in the selected time period</div>{{end}}{{end}}

{{define "selector"}}{{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}{{end}}

{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.}}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap-icons@1.11.3/font/bootstrap-icons.min.css">
  <script src="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/js/bootstrap.bundle.min.js"></script>
  <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"></script>
  <style>
    #alert-container { position: fixed; top: 1rem; right: 1rem; z-index: 1080; min-width: 320px; }
    .chart-box { position: relative; height: 320px; }
    .alert-item { border-left: 4px solid #6c757d; padding: .5rem .75rem; margin-bottom: .5rem; background: #f8f9fa; }
    .alert-item.critical { border-left-color: #dc3545; }
    .alert-item.warning { border-left-color: #ffc107; }
    .alert-item.resolved { opacity: .6; }
    .alert-time { font-size: .85rem; color: #6c757d; white-space: nowrap; }
    .temp-warning { color: #b58100; font-weight: 600; }
    .temp-danger { color: #dc3545; font-weight: 600; }
  </style>
</head>{{end}}

{{define "chart_script"}}<script>
const chartSlots = new Map();
function drawCharts(root) {
  root.querySelectorAll('canvas[data-chart]').forEach(function (canvas) {
    const prev = chartSlots.get(canvas.id);
    if (prev && prev.canvas === canvas && prev.generation === canvas.dataset.generation) return;
    if (prev) prev.chart.destroy();
    const cfg = JSON.parse(canvas.dataset.chart);
    const scales = cfg.type === 'pie' ? {} : {
      y: {beginAtZero: !!cfg.beginAtZero, title: {display: !!cfg.yTitle, text: cfg.yTitle || ''}},
      x: {title: {display: !!cfg.xTitle, text: cfg.xTitle || ''}}
    };
    const chart = new Chart(canvas.getContext('2d'), {
      type: cfg.type,
      data: {labels: cfg.labels, datasets: cfg.datasets},
      options: {responsive: true, maintainAspectRatio: false, scales: scales,
        plugins: {title: {display: !!cfg.title, text: cfg.title || ''}}}
    });
    chartSlots.set(canvas.id, {canvas: canvas, generation: canvas.dataset.generation, chart: chart});
  });
}
function pruneBanners() {
  const now = Date.now();
  document.querySelectorAll('#alert-container [data-expires]').forEach(function (el) {
    if (Number(el.dataset.expires) <= now) el.remove();
  });
}
setInterval(pruneBanners, 500);
document.addEventListener('closed.bs.alert', function (ev) {
  const id = ev.target.dataset.noticeId;
  if (id) fetch('/dashboard/banners/' + encodeURIComponent(id) + '/dismiss', {method: 'POST'});
});
</script>{{end}}
`

const dashboardTemplate = `
{{define "dashboard"}}{{template "head" "Temperature Dashboard"}}
<body>
{{template "nav" "dashboard"}}
<div id="alert-container">{{template "banners" .Notices}}</div>
<div class="container-fluid py-3">
  <div class="d-flex flex-wrap gap-2 align-items-center mb-3">
    <h1 class="h3 me-auto">Temperature Monitoring</h1>
    <select id="facility-selector" class="form-select w-auto">{{template "selector" .}}</select>
    <select id="time-range-selector" class="form-select w-auto">
      {{range .Ranges}}<option value="{{.Hours}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
    </select>
    <button id="trigger-ingestion-btn" class="btn btn-outline-secondary">Refresh Readings</button>
  </div>

  <div class="card mb-3"><div class="card-body"><div class="chart-box" id="temperature-chart-box">
    {{if .Chart}}{{template "chart" .Chart}}{{else}}<canvas id="temperature-chart"></canvas>{{end}}
  </div></div></div>

  <div class="row">
    <div class="col-lg-8">
      <div class="card mb-3">
        <div class="card-header">Current Temperatures</div>
        <table id="current-temps-table" class="table table-hover mb-0">
          <thead><tr><th>Unit</th><th>Facility</th><th>Temperature</th><th>Status</th><th>Last Updated</th></tr></thead>
          <tbody>{{template "temps_rows" .}}</tbody>
        </table>
      </div>
    </div>
    <div class="col-lg-4">
      <div class="card mb-3">
        <div class="card-header">Alerts</div>
        <div class="card-body" id="alerts-container">{{template "alerts" .}}</div>
      </div>
    </div>
  </div>

  <div class="row" id="facilities-container">{{template "facilities" .}}</div>
</div>

<div class="modal fade" id="unit-detail-modal" tabindex="-1" aria-hidden="true">
  <div class="modal-dialog modal-lg"><div class="modal-content">
    <div class="modal-header"><h5 class="modal-title">Unit Details</h5>
      <button type="button" class="btn-close" data-bs-dismiss="modal" aria-label="Close"></button></div>
    <div class="modal-body" id="unit-detail-body"></div>
  </div></div>
</div>

{{template "chart_script"}}
<script>
const refreshEvery = {{.IntervalMilli}};
const facilitySelector = document.getElementById('facility-selector');
const rangeSelector = document.getElementById('time-range-selector');
let socket = null;

function applyFragments(fragments) {
  Object.keys(fragments || {}).forEach(function (selector) {
    const el = document.querySelector(selector);
    if (el) el.innerHTML = fragments[selector];
  });
  drawCharts(document);
}

function selection() {
  return {facility_id: facilitySelector.value, hours: Number(rangeSelector.value)};
}

async function updateDashboard() {
  const sel = selection();
  if (socket && socket.readyState === WebSocket.OPEN) {
    socket.send(JSON.stringify(Object.assign({type: 'select'}, sel)));
    return;
  }
  const resp = await fetch('/dashboard/fragments/refresh?facility_id=' + encodeURIComponent(sel.facility_id) + '&hours=' + sel.hours);
  if (resp.status === 409) return;
  const body = await resp.json();
  applyFragments(body.fragments);
}

function connect() {
  if (refreshEvery <= 0 || !window.WebSocket) return;
  const proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  socket = new WebSocket(proto + location.host + '/ws?interval_ms=' + refreshEvery);
  socket.onmessage = function (ev) {
    const msg = JSON.parse(ev.data);
    if (msg.type === 'fragments') applyFragments(msg.data);
  };
  socket.onclose = function () { socket = null; };
}

facilitySelector.addEventListener('change', updateDashboard);
rangeSelector.addEventListener('change', updateDashboard);

document.addEventListener('click', async function (ev) {
  const facilityBtn = ev.target.closest('.view-facility-btn');
  if (facilityBtn) {
    facilitySelector.value = facilityBtn.dataset.facilityId;
    updateDashboard();
    return;
  }
  const row = ev.target.closest('.unit-row');
  if (row) {
    const resp = await fetch('/dashboard/units/' + encodeURIComponent(row.dataset.unitId));
    const body = document.getElementById('unit-detail-body');
    body.innerHTML = await resp.text();
    bootstrap.Modal.getOrCreateInstance(document.getElementById('unit-detail-modal')).show();
    drawCharts(body);
  }
});

document.getElementById('trigger-ingestion-btn').addEventListener('click', async function () {
  const resp = await fetch('/dashboard/ingestion', {method: 'POST'});
  const body = await resp.json();
  applyFragments(body.fragments);
});

drawCharts(document);
if (!{{.Loaded}}) updateDashboard();
connect();
</script>
</body>
</html>{{end}}

{{define "unit_detail"}}<dl class="row">
  <dt class="col-sm-4">Unit</dt><dd class="col-sm-8" id="modal-unit-name">{{.Name}}</dd>
  <dt class="col-sm-4">Facility</dt><dd class="col-sm-8" id="modal-facility-name">{{.Facility}}</dd>
  <dt class="col-sm-4">Current</dt><dd class="col-sm-8" id="modal-current-temp">{{.Current}}</dd>
  <dt class="col-sm-4">Target</dt><dd class="col-sm-8" id="modal-target-temp">{{.Target}}</dd>
  <dt class="col-sm-4">Status</dt><dd class="col-sm-8" id="modal-status"><span class="badge {{.Badge.Class}}">{{.Badge.Label}}</span></dd>
  <dt class="col-sm-4">Equipment</dt><dd class="col-sm-8" id="modal-equipment-type">{{.Equipment}}</dd>
  <dt class="col-sm-4">Size</dt><dd class="col-sm-8" id="modal-size">{{.Size}}</dd>
  <dt class="col-sm-4">Last Update</dt><dd class="col-sm-8" id="modal-last-update">{{.LastUpdate}}</dd>
</dl>
<div class="chart-box">{{if .Chart}}{{template "chart" .Chart}}{{else if .Notice}}<div class="alert alert-{{.NoticeLevel}}">{{.Notice}}</div>{{else}}<canvas id="unit-history-chart"></canvas>{{end}}</div>{{end}}
`

const adminTemplate = `
{{define "admin"}}{{template "head" "Admin Dashboard"}}
<body>
{{template "nav" "admin"}}
<div id="alert-container">{{template "banners" .Notices}}</div>
<div class="container-fluid py-3">
  <h1 class="h3 mb-3">Administration</h1>

  <div class="row">
    <div class="col-lg-6 mb-3"><div class="card"><div class="card-header">Customer Statistics</div>
      <div class="card-body" id="customer-stats-box"><div class="chart-box"><canvas id="customerStatsChart"></canvas></div></div></div></div>
    <div class="col-lg-6 mb-3"><div class="card"><div class="card-header">Ingestion Summary</div>
      <div class="card-body" id="ingestion-summary-box"><div class="chart-box"><canvas id="ingestionSummaryChart"></canvas></div></div></div></div>
  </div>

  <div class="row">
    <div class="col-lg-6 mb-3"><div class="card"><div class="card-header">System Overview</div>
      <table class="table table-sm mb-0"><tbody>{{range .Overview}}<tr><th>{{.Key}}</th><td>{{.Value}}</td></tr>{{else}}<tr><td class="text-muted">No overview available</td></tr>{{end}}</tbody></table>
    </div></div>
    <div class="col-lg-6 mb-3"><div class="card"><div class="card-header">System Alerts</div>
      <div class="card-body">{{template "alert_items" .Alerts}}</div>
    </div></div>
  </div>

  <div class="card mb-3"><div class="card-header">Customers</div><div class="card-body">
    <form id="customerCreateForm" class="row g-2 mb-3" data-action="customer.create">
      <div class="col"><input class="form-control" name="name" placeholder="Name" required></div>
      <div class="col"><input class="form-control" name="customer_code" placeholder="Customer code" required></div>
      <div class="col-auto"><button class="btn btn-primary" type="submit">Create</button></div>
    </form>
    {{range .Customers}}<div class="border rounded p-2 mb-2">
      <h6><span class="customer-name-{{classToken .ID}}">{{.Name}}</span> <small class="text-muted">{{.Code}}</small></h6>
      <form class="customer-update-form row g-2 mb-2" data-action="customer.update" data-customer-id="{{.ID}}">
        <div class="col"><input class="form-control form-control-sm" name="name" value="{{.Name}}"></div>
        <div class="col-auto"><button class="btn btn-sm btn-outline-primary" type="submit">Update</button></div>
      </form>
      <table class="table table-sm"><tbody>
        {{$cid := .ID}}{{range .Tokens}}<tr id="token-row-{{classToken .ID}}">
          <td>{{.Name}}</td><td>{{.CreatedAt}}</td><td>{{if .Active}}active{{else}}revoked{{end}}</td>
          <td><button type="button" class="btn btn-sm btn-outline-danger revoke-token-btn" data-action="token.revoke" data-customer-id="{{$cid}}" data-token-id="{{.ID}}">Revoke</button></td>
        </tr>{{end}}
      </tbody></table>
      <form class="token-create-form row g-2" data-action="token.create" data-customer-id="{{.ID}}">
        <div class="col"><input class="form-control form-control-sm" name="name" placeholder="Token name"></div>
        <div class="col-auto"><button class="btn btn-sm btn-outline-secondary" type="submit">New token</button></div>
      </form>
    </div>{{end}}
  </div></div>

  <div class="card mb-3"><div class="card-header">Facilities</div><div class="card-body">
    <form id="facilityCreateForm" class="row g-2 mb-3" data-action="facility.create">
      <div class="col"><input class="form-control" name="name" placeholder="Name" required></div>
      <div class="col"><input class="form-control" name="facility_code" placeholder="Facility code" required></div>
      <div class="col"><input class="form-control" name="customer_id" placeholder="Customer id" required></div>
      <div class="col-auto"><button class="btn btn-primary" type="submit">Create</button></div>
    </form>
    {{range .Facilities}}<div class="border rounded p-2 mb-2">
      <h6><span class="facility-name-{{classToken .ID}}">{{.Name}}</span> <small class="text-muted">{{.Code}}</small></h6>
      <form class="facility-update-form row g-2 mb-2" data-action="facility.update" data-facility-id="{{.ID}}">
        <div class="col"><input class="form-control form-control-sm" name="name" value="{{.Name}}"></div>
        <div class="col-auto"><button class="btn btn-sm btn-outline-primary" type="submit">Update</button></div>
      </form>
      <ul class="list-unstyled ms-3">{{range .Units}}<li>
        <span class="unit-name-{{classToken .ID}}">{{.Name}}</span>
        <form class="unit-update-form d-inline-flex gap-1" data-action="unit.update" data-unit-id="{{.ID}}">
          <input class="form-control form-control-sm" name="name" value="{{.Name}}">
          <button class="btn btn-sm btn-outline-primary" type="submit">Update</button>
        </form>
      </li>{{end}}</ul>
      <form class="unit-create-form row g-2" data-action="unit.create" data-facility-id="{{.ID}}">
        <div class="col"><input class="form-control form-control-sm" name="name" placeholder="Unit name" required></div>
        <div class="col"><input class="form-control form-control-sm" name="unit_code" placeholder="Unit code"></div>
        <div class="col-auto"><button class="btn btn-sm btn-outline-secondary" type="submit">Add unit</button></div>
      </form>
    </div>{{end}}
  </div></div>

  <div class="card mb-3"><div class="card-header">Configuration</div>
    <table class="table table-sm mb-0"><tbody>{{range .Config}}<tr>
      <th>{{.Key}}</th><td class="config-value-{{classToken .Key}}">{{.Value}}</td>
      <td><form class="config-update-form d-flex gap-1" data-action="config.update" data-config-key="{{.Key}}">
        <input class="form-control form-control-sm" name="value" value="{{.Value}}">
        <button class="btn btn-sm btn-outline-primary" type="submit">Save</button>
      </form></td>
    </tr>{{end}}</tbody></table>
  </div>

  <div class="card mb-3"><div class="card-header">Machine Learning <span class="badge bg-info">Preview</span></div><div class="card-body">
    <form class="ml-config-form row g-2 mb-2" data-action="ml.configure">
      <div class="col"><input class="form-control" name="model" placeholder="Model"></div>
      <div class="col-auto"><button class="btn btn-outline-info" type="submit">Save</button></div>
    </form>
    <button type="button" class="btn btn-outline-info ml-training-btn" data-action="ml.train">Start training</button>
  </div></div>
</div>

<div class="modal fade" id="tokenModal" tabindex="-1" aria-hidden="true"><div class="modal-dialog"><div class="modal-content">
  <div class="modal-header"><h5 class="modal-title">New token</h5><button type="button" class="btn-close" data-bs-dismiss="modal"></button></div>
  <div class="modal-body"><p>Copy the token now, it will not be shown again.</p><code id="newTokenValue"></code></div>
</div></div></div>

{{template "chart_script"}}
<script>
function snake(key) { return key.replace(/[A-Z]/g, function (c) { return '_' + c.toLowerCase(); }); }

function collect(el) {
  const data = {};
  Object.keys(el.dataset).forEach(function (k) { if (k !== 'action') data[snake(k)] = el.dataset[k]; });
  if (el.tagName === 'FORM') new FormData(el).forEach(function (v, k) { data[k] = String(v); });
  return data;
}

function applyPatches(patches) {
  (patches || []).forEach(function (p) {
    if (p.kind === 'text') document.querySelectorAll(p.selector).forEach(function (el) { el.textContent = p.value; });
    if (p.kind === 'remove') document.querySelectorAll(p.selector).forEach(function (el) { el.remove(); });
    if (p.kind === 'show_token') {
      document.querySelector(p.selector).textContent = p.value;
      bootstrap.Modal.getOrCreateInstance(document.getElementById('tokenModal')).show();
    }
    if (p.kind === 'reload') setTimeout(function () { window.location.reload(); }, p.delay_ms);
  });
}

async function dispatch(el) {
  const data = collect(el);
  let resp = await fetch('/admin/actions/' + el.dataset.action, {
    method: 'POST', headers: {'Content-Type': 'application/json'}, body: JSON.stringify(data)
  });
  let body = await resp.json();
  if (resp.status === 409 && body.confirm) {
    if (!confirm(body.confirm)) return;
    data.confirm = 'true';
    resp = await fetch('/admin/actions/' + el.dataset.action, {
      method: 'POST', headers: {'Content-Type': 'application/json'}, body: JSON.stringify(data)
    });
    body = await resp.json();
  }
  if (body.banners !== undefined) document.getElementById('alert-container').innerHTML = body.banners;
  if (resp.ok) {
    if (el.tagName === 'FORM' && el.dataset.action.endsWith('.create')) el.reset();
    applyPatches(body.patches);
  }
}

document.addEventListener('submit', function (ev) {
  if (!ev.target.dataset.action) return;
  ev.preventDefault();
  dispatch(ev.target);
});
document.addEventListener('click', function (ev) {
  const btn = ev.target.closest('button[data-action]');
  if (!btn || btn.type === 'submit') return;
  ev.preventDefault();
  dispatch(btn);
});

async function loadFragment(url, boxId) {
  const resp = await fetch(url);
  document.getElementById(boxId).innerHTML = await resp.text();
  drawCharts(document.getElementById(boxId));
}
loadFragment('/admin/charts/customer-stats', 'customer-stats-box');
loadFragment('/admin/charts/ingestion-summary', 'ingestion-summary-box');
drawCharts(document);
</script>
</body>
</html>{{end}}

{{define "customer_stats"}}<div class="chart-box">{{template "chart" .Resources}}</div>
<div class="chart-box mt-3">{{template "chart" .Readings}}</div>{{end}}

{{define "ingestion_summary"}}<div class="chart-box">{{template "chart" .Chart}}</div>
<div class="mt-3 text-center"><div class="row">
  <div class="col-md-4"><div class="card"><div class="card-body"><h5 class="card-title">Success Rate</h5><h2 class="text-success">{{.Cards.SuccessRate}}</h2></div></div></div>
  <div class="col-md-4"><div class="card"><div class="card-body"><h5 class="card-title">Total Records</h5><h2>{{.Cards.TotalRecords}}</h2></div></div></div>
  <div class="col-md-4"><div class="card"><div class="card-body"><h5 class="card-title">Processes</h5><h2>{{.Cards.Processes}}</h2></div></div></div>
</div></div>{{end}}

{{define "chart_error"}}<div class="alert alert-danger">{{.}}</div>{{end}}
`
