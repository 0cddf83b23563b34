package util

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// HashPassword 使用 PBKDF2+SHA256 生成密码哈希，返回 "salt$hash" 形式的字符串。
// 用于生成写进配置文件的 password_hash。
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := pbkdf2.Key([]byte(password), salt, 100_000, 32, sha256.New)
	return base64.RawStdEncoding.EncodeToString(salt) + "$" +
		base64.RawStdEncoding.EncodeToString(hash), nil
}

// CheckPassword 验证明文密码与存储的哈希是否匹配。
func CheckPassword(password, stored string) bool {
	if password == "" || stored == "" {
		return false
	}

	parts := strings.Split(stored, "$")
	if len(parts) != 2 {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	hash := pbkdf2.Key([]byte(password), salt, 100_000, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(hash, expected) == 1
}

// ConstantTimeEquals 比较两个字符串，耗时与内容无关，
// 用于明文口令配置的场景，避免通过时间侧信道泄露前缀匹配
func ConstantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// ----------------- AES-256-GCM 加密/解密（用于备份文件） -----------------

// deriveKey 始终生成 32 字节 key，对配置里密钥的长度不敏感
func deriveKey(keyStr string) []byte {
	sum := sha256.Sum256([]byte(keyStr))
	return sum[:]
}

// EncryptAES 使用 AES-256-GCM 加密数据，返回 nonce+ciphertext。
func EncryptAES(keyStr string, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(deriveKey(keyStr))
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	// nonce 拼在前面，解密时拆回来
	return append(nonce, aesgcm.Seal(nil, nonce, plaintext, nil)...), nil
}

// DecryptAES 使用 AES-256-GCM 解密数据（输入必须是 nonce+ciphertext）。
func DecryptAES(keyStr string, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(deriveKey(keyStr))
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}

	ns := aesgcm.NonceSize()
	if len(data) < ns {
		return nil, fmt.Errorf("cipher too short")
	}
	plaintext, err := aesgcm.Open(nil, data[:ns], data[ns:], nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return plaintext, nil
}
