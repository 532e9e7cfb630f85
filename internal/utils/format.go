package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/jedib0t/go-pretty/v6/table"
)

/**
 * Convert a struct to an ordered map keyed by its json tags
 * @param {interface{}} v - Struct or pointer to struct
 * @returns {*orderedmap.OrderedMap} Fields in declaration order
 */
func StructToOrderedMap(v interface{}) (*orderedmap.OrderedMap, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := orderedmap.New()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

/**
 * Print rows as a table or as JSON
 * @param {io.Writer} w - Destination
 * @param {[]*orderedmap.OrderedMap} rows - Rows sharing the same keys
 * @param {bool} asJSON - Print an indented JSON array instead of a table
 * @returns {error} Encoding or write error
 * @description
 * - Table headers come from the keys of the first row, "service_name" becomes "Service Name"
 * - Missing or null cells are shown as "-"
 */
func PrintFormat(w io.Writer, rows []*orderedmap.OrderedMap, asJSON bool) error {
	if asJSON {
		if rows == nil {
			rows = []*orderedmap.OrderedMap{}
		}
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	keys := rows[0].Keys()
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, 0, len(keys))
	for _, k := range keys {
		header = append(header, HeaderTitle(k))
	}
	t.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, 0, len(keys))
		for _, k := range keys {
			r = append(r, cellText(row, k))
		}
		t.AppendRow(r)
	}
	t.Render()
	return nil
}

// HeaderTitle turns a json key into a column title.
func HeaderTitle(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func cellText(row *orderedmap.OrderedMap, key string) string {
	v, ok := row.Get(key)
	if !ok || v == nil {
		return "-"
	}
	switch val := v.(type) {
	case string:
		if val == "" {
			return "-"
		}
		return val
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, fmt.Sprint(item))
		}
		if len(parts) == 0 {
			return "-"
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}
