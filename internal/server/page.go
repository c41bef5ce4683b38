package server

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/Makepad-fr/stock/internal/inventory"
	"github.com/Makepad-fr/stock/internal/model"
)

type pageRow struct {
	Index int
	Name  string
}

type pageData struct {
	Flash    string
	FlashErr bool
	Rows     []pageRow
	Summary  []model.Entry
	MaxIndex int
}

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Stock</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 40rem; margin: 2rem auto; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #ddd; padding: .3rem .5rem; text-align: left; }
.flash { padding: .5rem; background: #e7f6e7; }
.flash.err { background: #fbe3e3; }
form { margin: .5rem 0; }
</style>
</head>
<body>
<h1>📦 Stock</h1>
<p><small>Items live only in this browser session and are gone when it ends.</small></p>
{{if .Flash}}<p class="flash{{if .FlashErr}} err{{end}}">{{.Flash}}</p>{{end}}

<h2>Add item</h2>
<form method="post" action="/add">
<input name="name" placeholder="Item name" autofocus>
<button>Add</button>
</form>

<h2>Inventory</h2>
{{if .Rows}}
<table>
<tr><th>Index</th><th>Item</th></tr>
{{range .Rows}}<tr><td>{{.Index}}</td><td>{{.Name}}</td></tr>
{{end}}
</table>

<h3>Summary</h3>
<table>
<tr><th>Item</th><th>Count</th></tr>
{{range .Summary}}<tr><td>{{.Name}}</td><td>{{.Count}}</td></tr>
{{end}}
</table>

<h3>Remove item</h3>
<form method="post" action="/remove-at">
<input name="index" type="number" min="0" max="{{.MaxIndex}}" step="1" value="0">
<button>Remove at index</button>
</form>
<form method="post" action="/remove">
<input name="name" placeholder="Item name">
<button>Remove one by name</button>
</form>
{{else}}
<p>The inventory is empty.</p>
{{end}}

<form method="post" action="/end"><button>End session</button></form>
</body>
</html>
`))

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	f := sess.TakeFlash()
	data := pageData{Flash: f.Text, FlashErr: f.Err}
	err := sess.Do(func(inv *inventory.Inventory) error {
		for i, name := range inv.Items() {
			data.Rows = append(data.Rows, pageRow{Index: i, Name: name})
		}
		data.Summary = inv.Entries()
		data.MaxIndex = inv.Len() - 1
		return nil
	})
	if err != nil {
		http.Error(w, message(err), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		s.logger.Log("render page:", err)
	}
}

func (s *Server) handleFormAdd(w http.ResponseWriter, r *http.Request) {
	name := r.PostFormValue("name")
	s.formChange(w, r, func(inv *inventory.Inventory) (string, error) {
		added, err := inv.Add(name)
		return "Added " + added + ".", err
	})
}

func (s *Server) handleFormRemove(w http.ResponseWriter, r *http.Request) {
	name := r.PostFormValue("name")
	s.formChange(w, r, func(inv *inventory.Inventory) (string, error) {
		removed, err := inv.RemoveOne(name)
		return "Removed " + removed + ".", err
	})
}

func (s *Server) handleFormRemoveAt(w http.ResponseWriter, r *http.Request) {
	raw := r.PostFormValue("index")
	idx, err := strconv.Atoi(raw)
	if err != nil {
		sess := s.sessionFor(w, r)
		sess.SetFlash("Index must be a whole number.", true)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.formChange(w, r, func(inv *inventory.Inventory) (string, error) {
		removed, err := inv.RemoveAt(idx)
		return "Removed " + removed + ".", err
	})
}

func (s *Server) handleFormEnd(w http.ResponseWriter, r *http.Request) {
	s.endSession(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// formChange applies fn, leaves the outcome as a flash message and sends the
// browser back to the page, which renders the fresh state.
func (s *Server) formChange(w http.ResponseWriter, r *http.Request, fn func(inv *inventory.Inventory) (string, error)) {
	sess := s.sessionFor(w, r)
	var msg string
	err := s.apply(sess, func(inv *inventory.Inventory) error {
		var err error
		msg, err = fn(inv)
		return err
	})
	if err != nil {
		sess.SetFlash(message(err), true)
	} else {
		sess.SetFlash(msg, false)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
