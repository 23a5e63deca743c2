package gen

import "testing"

func TestSanitizeIdentLeavesOrdinaryNamesAlone(t *testing.T) {
	if got := SanitizeIdent("header"); got != "header" {
		t.Errorf("SanitizeIdent(header) = %q, want header", got)
	}
}

func TestSanitizeIdentRenamesKeywordsStably(t *testing.T) {
	first := SanitizeIdent("type")
	second := SanitizeIdent("type")
	if first != "type_" {
		t.Errorf("SanitizeIdent(type) = %q, want type_", first)
	}
	if first != second {
		t.Errorf("SanitizeIdent(type) not stable: %q != %q", first, second)
	}
}

func TestFlattenedNameJoinsPathWithUnderscore(t *testing.T) {
	got := FlattenedName([]string{"Outer", "Inner"})
	if got != "Outer_Inner" {
		t.Errorf("FlattenedName = %q, want Outer_Inner", got)
	}
}

func TestFlattenedNameSanitizesKeywordCollision(t *testing.T) {
	got := FlattenedName([]string{"range"})
	if got != "range_" {
		t.Errorf("FlattenedName([range]) = %q, want range_", got)
	}
}

func TestGoFieldNameConvertsSnakeToCapitalCase(t *testing.T) {
	got := GoFieldName("inner_value_count")
	if got != "InnerValueCount" {
		t.Errorf("GoFieldName = %q, want InnerValueCount", got)
	}
}

func TestGoFieldNameCapitalizesSingleWord(t *testing.T) {
	got := GoFieldName("func")
	if got != "Func" {
		t.Errorf("GoFieldName(func) = %q, want Func", got)
	}
}
