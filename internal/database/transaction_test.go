package database

import (
	"strings"
	"testing"
)

func TestTxBuilder_Build_WrapsInTransaction(t *testing.T) {
	tb := NewTxBuilder()
	tb.Add(`CREATE type::record($rid) CONTENT { comment: $comment }`, map[string]interface{}{
		"rid":     "review:abc",
		"comment": "great",
	})
	tb.Add(`UPDATE type::record($id) SET reviews += type::record($rid)`, map[string]interface{}{
		"id":  "listing:xyz",
		"rid": "review:abc",
	})

	query, vars := tb.Build()

	if !strings.HasPrefix(query, "BEGIN TRANSACTION;") {
		t.Errorf("expected transaction prefix, got: %s", query)
	}
	if !strings.HasSuffix(query, "COMMIT TRANSACTION;") {
		t.Errorf("expected transaction suffix, got: %s", query)
	}
	if len(vars) != 4 {
		t.Errorf("expected 4 namespaced vars, got %d", len(vars))
	}
	// Original variable names must be gone so statements can't collide
	if strings.Contains(query, "$rid ") || strings.Contains(query, "$rid)") {
		t.Errorf("expected $rid to be namespaced, got: %s", query)
	}
}

func TestTxBuilder_Add_NamespacesVars(t *testing.T) {
	tb := NewTxBuilder()

	first := tb.Add(`DELETE type::record($id)`, map[string]interface{}{"id": "listing:1"})
	second := tb.Add(`DELETE type::record($id)`, map[string]interface{}{"id": "listing:2"})

	if first["id"] == second["id"] {
		t.Errorf("expected distinct namespaced names, both got %s", first["id"])
	}

	_, vars := tb.Build()
	if vars[first["id"]] != "listing:1" {
		t.Errorf("expected listing:1 under %s, got %v", first["id"], vars[first["id"]])
	}
	if vars[second["id"]] != "listing:2" {
		t.Errorf("expected listing:2 under %s, got %v", second["id"], vars[second["id"]])
	}
}

func TestTxBuilder_Build_Empty(t *testing.T) {
	query, vars := NewTxBuilder().Build()
	if query != "" || vars != nil {
		t.Errorf("expected empty build, got query=%q vars=%v", query, vars)
	}
}

func TestTxBuilder_AddRaw_KeepsStatement(t *testing.T) {
	tb := NewTxBuilder()
	tb.AddRaw("DELETE review")

	query, _ := tb.Build()
	if !strings.Contains(query, "DELETE review;") {
		t.Errorf("expected raw statement with terminator, got: %s", query)
	}
}
