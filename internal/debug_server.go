package internal

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

const inspectTemplate = `<!doctype html>
<html><head><meta charset="utf-8"><title>room-lab inspector</title>
<style>body{font-family:monospace}td,th{padding:2px 8px;text-align:left}</style></head>
<body>
<form><input name="prefix" value="{{.Prefix}}"><button>inspect</button></form>
{{range $k, $v := .Stats}}<div>{{$k}}: {{$v}}</div>{{end}}
<table>
<tr><th>key</th><th>room</th><th>public</th><th>protected</th><th>updated</th><th>detail</th></tr>
{{range .Items}}<tr><td>{{.Key}}</td><td>{{.RoomID}}</td><td>{{.Public}}</td><td>{{.Protected}}</td><td>{{.Updated}}</td><td>{{.Detail}}</td></tr>
{{end}}</table>
</body></html>`

var inspectTmpl = template.Must(template.New("inspect").Parse(inspectTemplate))

type InspectRow struct {
	Key       string
	RoomID    string
	Public    string
	Protected string
	Updated   string
	Detail    string
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

// Inspector renders the Badger keys under a prefix as an HTML table.
// It opens a read transaction per request and never writes.
func Inspector(db *badger.DB, defaultPrefix string, mapper RowMapper, statsProvider StatsProvider) http.HandlerFunc {
	if mapper == nil {
		mapper = DefaultMapper
	}
	return func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = defaultPrefix
		}

		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		err := db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				if err := item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(string(item.Key()), val))
					return nil
				}); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = inspectTmpl.Execute(w, data)
	}
}

func DefaultMapper(key string, val []byte) InspectRow {
	row := InspectRow{
		Key:       key,
		RoomID:    "--------",
		Public:    "-",
		Protected: "-",
		Updated:   "--:--:--",
		Detail:    "Size: " + strconv.Itoa(len(val)) + " bytes",
	}
	if i := strings.LastIndex(key, ":"); i >= 0 && i < len(key)-1 {
		row.RoomID = key[i+1:]
	}
	return row
}
