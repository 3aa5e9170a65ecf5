package model

import "encoding/json"

// カートの明細。
// 同じIDは1件だけ、Quantityは常に1以上（0になったら削除）。
type CartItem struct {
	ID       int64 `json:"id"`
	Quantity int64 `json:"quantity"`
}

// 保存する明細の並び。
// ストアから読み込むときに NormalizeItems を通すので、外部で書き換えられた値でも上の約束を守る。
type CartItems []CartItem

func (c *CartItems) UnmarshalJSON(b []byte) error {
	var raw []CartItem
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*c = NormalizeItems(raw)
	return nil
}

// カート全体の見え方。CartQuantityは保存せず毎回計算する。
type CartState struct {
	Items        []CartItem `json:"items"`
	CartQuantity int64      `json:"cartQuantity"`
	IsOpen       bool       `json:"isOpen"`
}

// 全明細の数量合計
func TotalQuantity(items []CartItem) int64 {
	var total int64 = 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

// 数量0以下の明細を落とし、重複IDは最初に出た位置へ数量を合算する。
// 順序は保つ。元のスライスは書き換えない。
func NormalizeItems(items []CartItem) []CartItem {
	out := make([]CartItem, 0, len(items))
	pos := make(map[int64]int, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if i, ok := pos[it.ID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		pos[it.ID] = len(out)
		out = append(out, it)
	}
	return out
}
