package models

import "sort"

// Oshi represents a favored character or idol read from the data file
type Oshi struct {
	OrderID   int    `json:"order_id"`
	NameEN    string `json:"oshi_name_en"`
	NameJP    string `json:"oshi_name_jp"`
	OrgEN     string `json:"oshi_org_en"`
	OrgJP     string `json:"oshi_org_jp"`
	Mark      string `json:"oshi_mark"`
	StartDate string `json:"oshi_start_date"`
}

// SortByOrder sorts the list in place, ascending by OrderID.
// Records sharing an OrderID keep their input order.
func SortByOrder(list []Oshi) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].OrderID < list[j].OrderID
	})
}
