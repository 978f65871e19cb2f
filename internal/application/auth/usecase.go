package auth

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/hst-contabilidad/internal/application/dto"
	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/pkg/jwt"
)

// OperatorSubject sujeto de los tokens del operador único.
const OperatorSubject = "operator"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret            string
	ExpMinutes        int
	ElevateExpMinutes int
	Issuer            string
}

// AuthUseCase login del operador y elevación a la capacidad de borrado.
// La credencial es una sola contraseña compartida; solo se conoce su hash bcrypt.
type AuthUseCase struct {
	passwordHash []byte
	jwtCfg       JWTConfig
	now          func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(passwordHash string, jwtCfg JWTConfig) *AuthUseCase {
	if jwtCfg.ExpMinutes <= 0 {
		jwtCfg.ExpMinutes = 480
	}
	if jwtCfg.ElevateExpMinutes <= 0 {
		jwtCfg.ElevateExpMinutes = 5
	}
	return &AuthUseCase{passwordHash: []byte(passwordHash), jwtCfg: jwtCfg, now: time.Now}
}

// Login verifica la contraseña y emite un token de sesión con scopes read y write.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.TokenResponse, error) {
	if err := uc.check(in.Password); err != nil {
		return nil, err
	}
	return uc.issue([]string{jwt.ScopeRead, jwt.ScopeWrite}, uc.jwtCfg.ExpMinutes)
}

// Elevate vuelve a pedir la contraseña y emite un token corto con la capacidad "delete".
// Sin bloqueo ni límite de intentos.
func (uc *AuthUseCase) Elevate(in dto.LoginRequest) (*dto.TokenResponse, error) {
	if err := uc.check(in.Password); err != nil {
		return nil, err
	}
	return uc.issue([]string{jwt.ScopeRead, jwt.ScopeWrite, jwt.ScopeDelete}, uc.jwtCfg.ElevateExpMinutes)
}

func (uc *AuthUseCase) check(password string) error {
	if len(uc.passwordHash) == 0 || password == "" {
		return domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(uc.passwordHash, []byte(password)); err != nil {
		return domain.ErrUnauthorized
	}
	return nil
}

func (uc *AuthUseCase) issue(scopes []string, minutes int) (*dto.TokenResponse, error) {
	ttl := time.Duration(minutes) * time.Minute
	token, err := jwt.Generate(uc.jwtCfg.Secret, OperatorSubject, uc.jwtCfg.Issuer, scopes, ttl)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token, Scopes: scopes, ExpiresAt: uc.now().Add(ttl)}, nil
}

// HashPassword genera el hash bcrypt para AUTH_OPERATOR_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
