package models

import (
	"encoding/json"
	"testing"
)

func TestSortByOrder(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input []int
		want  []int
	}{
		{name: "reversed", input: []int{2, 1}, want: []int{1, 2}},
		{name: "shuffled", input: []int{5, 3, 9, 1, 4}, want: []int{1, 3, 4, 5, 9}},
		{name: "already sorted", input: []int{1, 2, 3}, want: []int{1, 2, 3}},
		{name: "negative keys", input: []int{0, -2, 7}, want: []int{-2, 0, 7}},
		{name: "empty", input: []int{}, want: []int{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			list := make([]Oshi, len(tt.input))
			for i, id := range tt.input {
				list[i] = Oshi{OrderID: id}
			}

			SortByOrder(list)

			for i, want := range tt.want {
				if list[i].OrderID != want {
					t.Fatalf("position %d: expected order_id %d, got %d", i, want, list[i].OrderID)
				}
			}
		})
	}
}

func TestSortByOrder_Stable(t *testing.T) {
	t.Parallel()
	list := []Oshi{
		{OrderID: 2, NameEN: "b-first"},
		{OrderID: 1, NameEN: "a"},
		{OrderID: 2, NameEN: "b-second"},
	}

	SortByOrder(list)

	got := []string{list[0].NameEN, list[1].NameEN, list[2].NameEN}
	want := []string{"a", "b-first", "b-second"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
}

func TestOshi_JSONFieldNames(t *testing.T) {
	t.Parallel()
	raw := `{
		"order_id": 4,
		"oshi_name_en": "Hoshimachi Suisei",
		"oshi_name_jp": "星街すいせい",
		"oshi_org_en": "hololive",
		"oshi_org_jp": "ホロライブ",
		"oshi_mark": "☄️",
		"oshi_start_date": "2019-03-22"
	}`

	var o Oshi
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if o.OrderID != 4 || o.NameEN != "Hoshimachi Suisei" || o.NameJP != "星街すいせい" ||
		o.OrgEN != "hololive" || o.OrgJP != "ホロライブ" || o.Mark != "☄️" || o.StartDate != "2019-03-22" {
		t.Errorf("Unexpected decode result: %+v", o)
	}
}
