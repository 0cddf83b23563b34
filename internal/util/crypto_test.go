package util

import (
	"bytes"
	"strings"
	"testing"
)

// ============ 密码哈希测试 ============

func TestHashPassword(t *testing.T) {
	password := "MyPassword123"

	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatalf("哈希失败: %v", err)
	}
	if !strings.Contains(hashed, "$") {
		t.Error("哈希格式错误，应包含 $")
	}

	// 空密码应报错
	if _, err := HashPassword(""); err == nil {
		t.Error("空密码应返回错误")
	}

	// 相同密码生成不同哈希（随机 salt）
	hashed2, _ := HashPassword(password)
	if hashed == hashed2 {
		t.Error("相同密码应生成不同哈希（随机salt）")
	}
}

func TestCheckPassword(t *testing.T) {
	password := "TestPass456"
	hashed, _ := HashPassword(password)

	if !CheckPassword(password, hashed) {
		t.Error("正确密码验证失败")
	}
	if CheckPassword("WrongPass", hashed) {
		t.Error("错误密码不应通过验证")
	}
	if CheckPassword("", hashed) {
		t.Error("空密码不应通过验证")
	}
	if CheckPassword(password, "") {
		t.Error("空哈希不应通过验证")
	}
	if CheckPassword(password, "invalid-format") {
		t.Error("无效格式不应通过验证")
	}
}

func TestConstantTimeEquals(t *testing.T) {
	if !ConstantTimeEquals("admin123", "admin123") {
		t.Error("相同口令应相等")
	}
	if ConstantTimeEquals("admin123", "admin124") {
		t.Error("不同口令不应相等")
	}
	if ConstantTimeEquals("admin123", "admin") {
		t.Error("前缀匹配不应相等")
	}
}

// ============ AES-GCM 测试 ============

func TestEncryptDecryptAES(t *testing.T) {
	key := "test-encryption-key"
	plaintext := []byte(`{"records":[{"studentName":"小明"}]}`)

	enc, err := EncryptAES(key, plaintext)
	if err != nil {
		t.Fatalf("加密失败: %v", err)
	}
	if bytes.Contains(enc, plaintext) {
		t.Error("密文不应包含明文")
	}

	dec, err := DecryptAES(key, enc)
	if err != nil {
		t.Fatalf("解密失败: %v", err)
	}
	if !bytes.Equal(dec, plaintext) {
		t.Errorf("解密结果 = %q, want %q", dec, plaintext)
	}

	// 错误密钥解密应失败
	if _, err := DecryptAES("wrong-key", enc); err == nil {
		t.Error("错误密钥不应解密成功")
	}

	// 数据太短应报错
	if _, err := DecryptAES(key, []byte{0x01}); err == nil {
		t.Error("过短数据应返回错误")
	}
}
