package e2e_test

import (
	"encoding/json"
	"strconv"
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
