package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// RandomInt32 生成一个安全的随机32位整数
func RandomInt32() int32 {
	var num int32
	err := binary.Read(rand.Reader, binary.BigEndian, &num)
	if err != nil {
		panic("generate random int32 failed")
	}

	return num
}

// RandomDigitCode 生成指定位数的随机数字验证码
func RandomDigitCode(length int) string {
	code := ""
	for i := 0; i < length; i++ {
		n := RandomInt32()
		if n < 0 {
			n = -n
		}
		code += fmt.Sprintf("%d", n%10)
	}
	return code
}
