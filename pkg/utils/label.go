package utils

// Label 记录候选在链路中留下的解释信息，例如 score.activity=20 或 filtered=filter.threshold。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / rank.score / filter.* ...
}

// MergeLabel 合并同名 Label：Value 用 '|' 连接，Source 用 ',' 连接，空值不参与合并。
// 同一物品先后被多个 Node 打上同名标签时，可以从结果里还原完整经过。
func MergeLabel(existing, incoming Label) Label {
	switch {
	case existing.Value == "":
		return incoming
	case incoming.Value == "":
		return existing
	}
	return Label{
		Value:  existing.Value + "|" + incoming.Value,
		Source: joinNonEmpty(existing.Source, incoming.Source, ","),
	}
}

func joinNonEmpty(a, b, sep string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + sep + b
	}
}
