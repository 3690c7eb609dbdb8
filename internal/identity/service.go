package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/msme-awards/adjudication-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service is the database-backed Provider implementation. Tokens are
// HS256 JWTs; stored claims are authoritative and re-read on every
// verification so a claim change takes effect without reissue.
type Service struct {
	db     *gorm.DB
	secret []byte
	expiry time.Duration
}

func NewService(db *gorm.DB, secret string, expiry time.Duration) *Service {
	return &Service{db: db, secret: []byte(secret), expiry: expiry}
}

func (s *Service) CreateIdentity(email, password, displayName string) (string, error) {
	if email == "" || len(password) < 8 {
		return "", errors.New("email required and password must be at least 8 characters")
	}

	var existing models.Identity
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	ident := models.Identity{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Claims:       datatypes.JSONMap{},
	}
	if err := s.db.Create(&ident).Error; err != nil {
		return "", fmt.Errorf("failed to create identity: %w", err)
	}

	return ident.UID, nil
}

func (s *Service) IssueToken(email, password string) (string, *Principal, error) {
	var ident models.Identity
	if err := s.db.Where("email = ?", email).First(&ident).Error; err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   ident.UID,
		"email": ident.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.expiry).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, s.principal(&ident), nil
}

func (s *Service) VerifyCredential(tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrTokenMalformed
	}

	var ident models.Identity
	if err := s.db.Where("uid = ?", sub).First(&ident).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}

	return s.principal(&ident), nil
}

func (s *Service) SetClaims(uid string, claims map[string]interface{}) error {
	var ident models.Identity
	if err := s.db.Where("uid = ?", uid).First(&ident).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIdentityNotFound
		}
		return fmt.Errorf("failed to load identity: %w", err)
	}

	merged := datatypes.JSONMap{}
	for k, v := range ident.Claims {
		merged[k] = v
	}
	for k, v := range claims {
		merged[k] = v
	}

	if err := s.db.Model(&ident).Update("claims", merged).Error; err != nil {
		return fmt.Errorf("failed to update claims: %w", err)
	}
	return nil
}

func (s *Service) principal(ident *models.Identity) *Principal {
	claims := make(map[string]interface{}, len(ident.Claims))
	for k, v := range ident.Claims {
		claims[k] = v
	}
	return &Principal{UID: ident.UID, Email: ident.Email, Claims: claims}
}
