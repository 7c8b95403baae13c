package handlers

import (
	"html/template"
	"net/http"

	"swiftverify/internal/models"
)

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!doctype html>
<html>
<head>
  <title>Admin Dashboard - Verifications</title>
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <style>
    body{font-family:Arial,Helvetica,sans-serif;padding:20px;background:#f5f7fb}
    h1{margin-bottom:10px}
    .top { display:flex; gap:10px; align-items:center; margin-bottom:15px; }
    button{padding:8px 12px;border-radius:6px;border:1px solid #ccc;background:#fff;cursor:pointer}
    table{width:100%;border-collapse:collapse;background:#fff;border-radius:8px;overflow:hidden}
    th,td{padding:10px;border-bottom:1px solid #eee;text-align:left;vertical-align:middle}
    th{background:#fafafa}
    img{border-radius:6px;max-width:120px;height:auto;display:block}
    .small{font-size:12px;color:#666}
  </style>
</head>
<body>
  <div class="top">
    <h1>Uploaded Verifications</h1>
    <div style="margin-left:auto">
      <button onclick="window.location.reload()">Reload</button>
    </div>
  </div>

  <p class="small">Total records: {{len .Records}}</p>

  <table>
    <thead>
      <tr>
        <th>#</th>
        <th>Name</th>
        <th>ID Number</th>
        <th>Phone</th>
        <th>Selfie</th>
        <th>ID Front</th>
        <th>ID Back</th>
        <th>ID Check</th>
        <th>Uploaded At</th>
        <th></th>
      </tr>
    </thead>
    <tbody>
      {{range $i, $r := .Records}}
      <tr>
        <td>{{inc $i}}</td>
        <td>{{$r.Name}}</td>
        <td>{{$r.IDNumber}}</td>
        <td>{{$r.Phone}}</td>
        <td><a href="{{$r.Selfie.URL}}" target="_blank"><img src="{{$r.Selfie.URL}}" alt="selfie"/></a></td>
        <td><a href="{{$r.FrontID.URL}}" target="_blank"><img src="{{$r.FrontID.URL}}" alt="frontID"/></a></td>
        <td><a href="{{$r.BackID.URL}}" target="_blank"><img src="{{$r.BackID.URL}}" alt="backID"/></a></td>
        <td>{{if $r.IDCheck}}{{$r.IDCheck}}{{else}}&mdash;{{end}}</td>
        <td>{{$r.CreatedAt.Format "2006-01-02 15:04:05 MST"}}</td>
        <td>
          <form action="/admin/api/records/{{$r.ID}}/delete" method="POST" onsubmit="return confirm('Delete this record and its images?')">
            <button type="submit">Delete</button>
          </form>
        </td>
      </tr>
      {{end}}
    </tbody>
  </table>
</body>
</html>
`))

// Dashboard renders the records table, newest first.
// GET /dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	records, err := h.Records.ReadAll(r.Context())
	if err != nil {
		http.Error(w, "failed to read records", http.StatusInternalServerError)
		return
	}
	sortNewestFirst(records)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = dashboardTmpl.Execute(w, struct {
		Records []models.VerificationRecord
	}{Records: records})
}
