package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"time"

	"github.com/skip2/go-qrcode"
)

// Generator produces confirmation QR codes for registrations. The
// payload is AES-encrypted so the code can only be validated by a
// holder of the secret.
type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &Generator{secret: hashed[:]}
}

type payload struct {
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	IssuedAt       time.Time `json:"issued_at"`
}

// GenerateConfirmation returns a PNG QR code carrying the encrypted
// registration reference.
func (g *Generator) GenerateConfirmation(eventID, registrationID string) ([]byte, error) {
	data, err := json.Marshal(payload{
		RegistrationID: registrationID,
		EventID:        eventID,
		IssuedAt:       time.Now(),
	})
	if err != nil {
		return nil, err
	}

	encrypted, err := encryptAES(data, g.secret)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

func encryptAES(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]

	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}
