package dex

var typeNames = map[int]string{
	1:  "ノーマル",
	2:  "かくとう",
	3:  "ひこう",
	4:  "どく",
	5:  "じめん",
	6:  "いわ",
	7:  "むし",
	8:  "ゴースト",
	9:  "はがね",
	10: "ほのお",
	11: "みず",
	12: "くさ",
	13: "でんき",
	14: "エスパー",
	15: "こおり",
	16: "ドラゴン",
	17: "あく",
	18: "フェアリー",
}

// TypeName returns the Japanese name of a type id, or "" for unknown ids
// and the 0 placeholder
func TypeName(id int) string {
	return typeNames[id]
}

// TypeNames maps ids to names, skipping unknown ids
func TypeNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name := TypeName(id); name != "" {
			names = append(names, name)
		}
	}
	return names
}
