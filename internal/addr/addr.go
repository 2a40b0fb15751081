package addr

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// 确定性地址派生：由 (kind, parent, discriminator) 计算出稳定的账户标识，
// 仅用于查找，不承载所有权关系。种子布局：
//
//	pool      = derive("pool", name)
//	vault     = derive("vault", pool)
//	campaign  = derive("campaign", pool)
//	milestone = derive("milestone", campaign, index)

// Kind 地址类别
type Kind string

const (
	KindPool      Kind = "pool"
	KindVault     Kind = "vault"
	KindCampaign  Kind = "campaign"
	KindMilestone Kind = "milestone"
)

// Derive 派生地址
func Derive(kind Kind, seeds ...string) string {
	h := sha256.New()
	h.Write([]byte(kind))
	for _, s := range seeds {
		// 长度前缀防止不同种子串的拼接歧义
		h.Write([]byte{byte(len(s))})
		h.Write([]byte(s))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Pool 由名称派生资金池地址
func Pool(name string) string {
	return Derive(KindPool, name)
}

// Vault 由资金池地址派生金库地址
func Vault(pool string) string {
	return Derive(KindVault, pool)
}

// Campaign 由资金池地址派生活动地址
func Campaign(pool string) string {
	return Derive(KindCampaign, pool)
}

// Milestone 由活动地址和序号派生里程碑地址
func Milestone(campaign string, index uint8) string {
	return Derive(KindMilestone, campaign, strconv.Itoa(int(index)))
}
