package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList 以JSON数组形式存储的字符串列表字段
type StringList []string

// Value 实现 driver.Valuer 接口
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner 接口
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("StringList: 不支持的数据库类型")
	}
}

// UintList 以JSON数组形式存储的数字ID列表字段
type UintList []uint

// Value 实现 driver.Valuer 接口
func (l UintList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner 接口
func (l *UintList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("UintList: 不支持的数据库类型")
	}
}
