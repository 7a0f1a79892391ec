package utils

import "golang.org/x/crypto/bcrypt"

// Hasher 单向摘要；bcrypt 的随机 salt 保存在摘要本身里，校验时复用
type Hasher struct {
	Cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{Cost: cost}
}

func (h *Hasher) Hash(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *Hasher) Check(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}

// IsHashed 判断值是否已经是 bcrypt 摘要
func IsHashed(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
