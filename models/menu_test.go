package models

import (
	"reflect"
	"testing"
)

var testMenu = []MenuItem{
	{ID: 1, Name: "Nasi Goreng Spesial", Category: "Food", Price: 25000},
	{ID: 2, Name: "Mie Ayam", Category: "Food", Price: 18000},
	{ID: 3, Name: "Es Teh Manis", Category: "Drinks", Price: 5000},
	{ID: 4, Name: "Kopi Susu", Category: "drinks", Price: 12000},
}

func TestFilterMenuItemsNoFilters(t *testing.T) {
	got := FilterMenuItems(testMenu, "", "")
	if len(got) != len(testMenu) {
		t.Errorf("expected all %d items, got %d", len(testMenu), len(got))
	}
}

func TestFilterMenuItemsSearchIsCaseInsensitiveSubstring(t *testing.T) {
	got := FilterMenuItems(testMenu, "GORENG", "")
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected only Nasi Goreng Spesial, got %+v", got)
	}

	got = FilterMenuItems(testMenu, "  es teh ", "")
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("expected trimmed search to match Es Teh Manis, got %+v", got)
	}
}

func TestFilterMenuItemsCategoryIsCaseNormalizedExactMatch(t *testing.T) {
	got := FilterMenuItems(testMenu, "", "DRINKS")
	if len(got) != 2 {
		t.Fatalf("expected both drinks regardless of stored case, got %+v", got)
	}
	if got[0].ID != 3 || got[1].ID != 4 {
		t.Errorf("expected items 3 and 4, got %+v", got)
	}
}

func TestFilterMenuItemsAllCategoryMatchesEverything(t *testing.T) {
	got := FilterMenuItems(testMenu, "", CategoryAll)
	if len(got) != len(testMenu) {
		t.Errorf("expected %q to match all items, got %d", CategoryAll, len(got))
	}
}

func TestFilterMenuItemsCombined(t *testing.T) {
	got := FilterMenuItems(testMenu, "ayam", "food")
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("expected only Mie Ayam, got %+v", got)
	}

	got = FilterMenuItems(testMenu, "ayam", "drinks")
	if len(got) != 0 {
		t.Errorf("expected no matches, got %+v", got)
	}
}

func TestFilterMenuItemsNeverReturnsNil(t *testing.T) {
	got := FilterMenuItems(nil, "anything", "")
	if got == nil {
		t.Error("expected an empty slice, got nil")
	}
}

func TestCategoryOptions(t *testing.T) {
	got := CategoryOptions(testMenu)
	want := []string{"all", "drinks", "food"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCategoryOptionsSkipsBlank(t *testing.T) {
	items := []MenuItem{{ID: 1, Name: "Mystery", Category: "  "}}
	got := CategoryOptions(items)
	want := []string{"all"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
