package service

// 用户密码与联赛密码共用同一强度要求
const (
	passwordMinLen = 8
	passwordMaxLen = 12
)

// validPassword 8-12 位，至少包含一个小写字母、一个大写字母和一个数字
func validPassword(p string) bool {
	n := len([]rune(p))
	if n < passwordMinLen || n > passwordMaxLen {
		return false
	}

	var lower, upper, digit bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}
