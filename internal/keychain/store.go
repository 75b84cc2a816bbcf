// Package keychain 抽象平台凭据存储：描述符寻址、四个原语（add/update/find/remove）、
// 以及状态码。具体后端见 keyring.go（zalando/go-keyring）、ring.go（99designs/keyring）
// 与 memory.go。
package keychain

// Class 是存储条目的类别；目前只支持通用密码。
type Class string

const ClassGenericPassword Class = "genp"

// 条目属性键。
const (
	AttrClass   = "class"
	AttrService = "svce"
	AttrAccount = "acct"
	AttrLabel   = "labl"
)

// Descriptor 是一次调用的查询属性，调用结束即丢弃。
type Descriptor struct {
	Class   Class
	Service string
	Account string

	ReturnData       bool
	ReturnAttributes bool
	MatchLimitOne    bool
}

// GenericPassword 返回 (service, account) 主键描述符。
func GenericPassword(service, account string) Descriptor {
	return Descriptor{Class: ClassGenericPassword, Service: service, Account: account}
}

// Item 是 Find 的结果。Data 仅在 ReturnData 时填充，Attributes 仅在 ReturnAttributes 时填充。
type Item struct {
	Attributes map[string]string
	Data       []byte
}

// Store 是平台凭据存储的能力接口。返回的非 nil 错误均为 *StatusError。
type Store interface {
	Add(d Descriptor, secret []byte) error
	Update(d Descriptor, secret []byte) error
	Find(d Descriptor) (Item, error)
	Remove(d Descriptor) error
}

// validate 检查描述符是否可寻址。
func validate(op string, d Descriptor) error {
	if d.Class != ClassGenericPassword {
		return newStatusError(op, StatusUnimplemented, nil)
	}
	if d.Service == "" || d.Account == "" {
		return newStatusError(op, StatusParam, nil)
	}
	return nil
}

// itemFor 按描述符的返回标志组装 Item；account 为后端实际记录的账户名。
func itemFor(d Descriptor, account, label string, data []byte) Item {
	var it Item
	if d.ReturnData {
		it.Data = data
	}
	if d.ReturnAttributes {
		it.Attributes = map[string]string{
			AttrClass:   string(d.Class),
			AttrService: d.Service,
			AttrAccount: account,
		}
		if label != "" {
			it.Attributes[AttrLabel] = label
		}
	}
	return it
}
