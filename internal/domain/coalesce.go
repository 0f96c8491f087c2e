package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// IntOr returns the first positive value from vals, or the fallback.
func IntOr(fallback int, vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return fallback
}
