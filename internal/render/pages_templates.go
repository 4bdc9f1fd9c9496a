package render

const pagesTemplate = `
{{define "nav"}}<nav class="navbar navbar-expand navbar-dark bg-dark px-3">
  <a class="navbar-brand" href="/">TempMon</a>
  <ul class="navbar-nav">
    <li class="nav-item"><a class="nav-link{{if eq . "dashboard"}} active{{end}}" href="/">Dashboard</a></li>
    <li class="nav-item"><a class="nav-link{{if eq . "facilities"}} active{{end}}" href="/facilities">Facilities</a></li>
    <li class="nav-item"><a class="nav-link{{if eq . "units"}} active{{end}}" href="/units">Units</a></li>
    <li class="nav-item"><a class="nav-link{{if eq . "settings"}} active{{end}}" href="/settings">Settings</a></li>
    <li class="nav-item"><a class="nav-link{{if eq . "admin"}} active{{end}}" href="/admin">Admin</a></li>
  </ul>
</nav>{{end}}

{{define "unit_table"}}<table class="table table-hover mb-0">
  <thead><tr><th>Unit</th><th>Facility</th><th>Temperature</th><th>Status</th><th>Last Updated</th></tr></thead>
  <tbody>{{range .}}<tr data-unit-id="{{.UnitID}}">
    <td>{{.Name}}</td>
    <td>{{.Facility}}</td>
    <td{{if .Deviation}} class="temp-{{.Deviation}}"{{end}}>{{.Temperature}}</td>
    <td><span class="badge {{.Badge.Class}}">{{.Badge.Label}}</span></td>
    <td>{{.Updated}}</td>
  </tr>{{else}}<tr><td colspan="5" class="text-center">No units found</td></tr>{{end}}</tbody>
</table>{{end}}

{{define "facility_summary"}}<p><strong>Location:</strong> {{.Location}}</p>
<p><strong>Units:</strong> {{.Units}}</p>
{{if or .Critical .Warning}}<p class="mb-0">
  {{if .Critical}}<span class="badge bg-danger">{{.Critical}} critical</span>{{end}}
  {{if .Warning}}<span class="badge bg-warning text-dark">{{.Warning}} warning</span>{{end}}
  <span class="text-muted ms-1">{{.AlarmShare}}% in alarm</span>
</p>{{end}}{{end}}

{{define "facilities_page"}}{{template "head" "Facilities"}}
<body>
{{template "nav" .Nav}}
<div id="alert-container">{{template "banners" .Notices}}</div>
<div class="container-fluid py-3">
  <h1 class="h3 mb-3">Facilities</h1>
  <div class="row">{{range .Facilities}}<div class="col-md-4 mb-4">
    <div class="card h-100">
      <div class="card-header"><h5 class="card-title mb-0">{{.Name}}</h5></div>
      <div class="card-body">{{template "facility_summary" .}}</div>
      <div class="card-footer"><a class="btn btn-sm btn-primary" href="/facilities/{{.ID}}"><i class="bi bi-eye"></i> View Details</a></div>
    </div>
  </div>{{else}}<div class="col-12 text-center">No facilities available</div>{{end}}</div>
</div>
{{template "chart_script"}}
</body>
</html>{{end}}

{{define "facility_page"}}{{template "head" .Summary.Name}}
<body>
{{template "nav" .Nav}}
<div id="alert-container">{{template "banners" .Notices}}</div>
<div class="container-fluid py-3">
  <a href="/facilities" class="btn btn-sm btn-outline-secondary mb-2"><i class="bi bi-arrow-left"></i> Facilities</a>
  <h1 class="h3 mb-3">{{.Summary.Name}}</h1>
  <div class="row">
    <div class="col-lg-4 mb-3"><div class="card"><div class="card-body">{{template "facility_summary" .Summary}}</div></div></div>
    <div class="col-lg-8 mb-3"><div class="card"><div class="card-header">Statistics</div>
      <table class="table table-sm mb-0"><tbody>{{range .Stats}}<tr><th>{{.Key}}</th><td>{{.Value}}</td></tr>{{else}}<tr><td class="text-muted">No statistics available</td></tr>{{end}}</tbody></table>
    </div></div>
  </div>
  <div class="card mb-3"><div class="card-body"><div class="chart-box">
    {{if .Chart}}{{template "chart" .Chart}}{{else}}<div class="text-center text-muted">No readings in the last 24 hours</div>{{end}}
  </div></div></div>
  <div class="card mb-3"><div class="card-header">Units</div>{{template "unit_table" .Rows}}</div>
</div>
{{template "chart_script"}}
<script>drawCharts(document);</script>
</body>
</html>{{end}}

{{define "units_page"}}{{template "head" "Units"}}
<body>
{{template "nav" .Nav}}
<div id="alert-container">{{template "banners" .Notices}}</div>
<div class="container-fluid py-3">
  <h1 class="h3 mb-3">Storage Units</h1>
  <div class="card">{{template "unit_table" .Rows}}</div>
</div>
{{template "chart_script"}}
</body>
</html>{{end}}

{{define "settings_page"}}{{template "head" "Settings"}}
<body>
{{template "nav" .Nav}}
<div id="alert-container">{{template "banners" .Notices}}</div>
<div class="container-fluid py-3">
  <h1 class="h3 mb-3">Settings</h1>
  <div class="row">
    <div class="col-lg-6 mb-3"><div class="card"><div class="card-header">Profile</div>
      <table class="table table-sm mb-0"><tbody>{{range .Profile}}<tr><th>{{.Key}}</th><td>{{.Value}}</td></tr>{{else}}<tr><td class="text-muted">Profile unavailable</td></tr>{{end}}</tbody></table>
    </div></div>
    <div class="col-lg-6 mb-3"><div class="card"><div class="card-header">API Tokens</div>
      <table class="table table-sm mb-0"><tbody>{{range .Tokens}}<tr id="token-row-{{classToken .ID}}">
        <td>{{.Name}}</td><td>{{.CreatedAt}}</td><td>{{if .Active}}active{{else}}revoked{{end}}</td>
      </tr>{{else}}<tr><td class="text-muted">No API tokens</td></tr>{{end}}</tbody></table>
    </div></div>
  </div>
</div>
{{template "chart_script"}}
</body>
</html>{{end}}
`
