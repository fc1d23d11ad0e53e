package util

import (
	"encoding/json"
	"strconv"
)

// ToInt 将 JSON 解码产生的松散标量（float64、json.Number、字符串）转换为整数
func ToInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	case int:
		return n, true
	}
	return 0, false
}
