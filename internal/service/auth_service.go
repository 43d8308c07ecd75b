package service

import (
	"context"
	"errors"
	"time"
	"unicode"

	"github.com/GenturixHub/Genturix-sub003/internal/access"
	"github.com/GenturixHub/Genturix-sub003/internal/config"
	"github.com/GenturixHub/Genturix-sub003/internal/dto"
	"github.com/GenturixHub/Genturix-sub003/internal/model"
	"github.com/GenturixHub/Genturix-sub003/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error
	// SelectRole records the panel a multi-role user picked and returns its
	// dedicated route. The choice is remembered per user until the next pick.
	SelectRole(ctx context.Context, userID uuid.UUID, role string) (*dto.SelectRoleResponse, error)
}

type authService struct {
	repo repository.UsuarioRepository
	rdb  *redis.Client
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, rdb *redis.Client, cfg *config.Config) AuthService {
	return &authService{repo: repo, rdb: rdb, cfg: cfg}
}

const activeRoleKeyPrefix = "active_role:"

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("credenciales invalidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciales invalidas")
	}

	switch user.Estado {
	case model.EstadoBloqueado:
		return nil, errors.New("cuenta bloqueada: contacte a su administrador")
	case model.EstadoSuspendido:
		return nil, errors.New("cuenta suspendida: contacte a su administrador")
	}

	return s.buildLoginResponse(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token mal formado")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("token mal formado")
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Activo() {
		return nil, errors.New("usuario no encontrado o inactivo")
	}

	return s.buildLoginResponse(user)
}

func (s *authService) buildLoginResponse(user *model.Usuario) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	roles := access.NormalizeAll(user.Roles)
	return &dto.LoginResponse{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		TokenType:             "bearer",
		ExpiresIn:             s.cfg.JWTExpirationHours * 3600,
		User:                  usuarioToResponse(user),
		PasswordResetRequired: user.PasswordResetRequired,
		LandingRoute:          string(access.ResolveLandingRoute(roles)),
	}, nil
}

// ValidarPolitica checks the password policy shared with the client:
// length >= 8, at least one upper-case, one lower-case, and one digit.
func ValidarPolitica(password string) error {
	if len(password) < 8 {
		return errors.New("la contrasena debe tener al menos 8 caracteres")
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return errors.New("la contrasena debe incluir mayuscula, minuscula y numero")
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return errors.New("usuario no encontrado")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return errors.New("la contrasena actual es incorrecta")
	}
	if err := ValidarPolitica(req.NewPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.PasswordResetRequired = false
	return s.repo.Update(ctx, user)
}

func (s *authService) SelectRole(ctx context.Context, userID uuid.UUID, role string) (*dto.SelectRoleResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.New("usuario no encontrado")
	}

	picked := access.Normalize(role)
	roles := access.NormalizeAll(user.Roles)
	if !access.Contains(roles, picked) {
		return nil, errors.New("el usuario no posee el rol seleccionado")
	}

	if s.rdb != nil {
		// Remembered until the next pick; a fresh login with the same roles
		// reproduces the same panel options regardless.
		s.rdb.Set(ctx, activeRoleKeyPrefix+userID.String(), string(picked), 0)
	}

	return &dto.SelectRoleResponse{
		ActiveRole:   string(picked),
		LandingRoute: string(access.ResolveLandingRoute([]access.Role{picked})),
	}, nil
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	var condominioID *string
	if user.CondominioID != nil {
		s := user.CondominioID.String()
		condominioID = &s
	}
	claims := jwt.MapClaims{
		"user_id":                 user.ID.String(),
		"email":                   user.Email,
		"roles":                   access.Strings(access.NormalizeAll(user.Roles)),
		"condominio_id":           condominioID,
		"password_reset_required": user.PasswordResetRequired,
		"exp":                     time.Now().Add(duration).Unix(),
		"iat":                     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	roles := access.Strings(access.NormalizeAll(u.Roles))
	primary := ""
	if len(roles) > 0 {
		primary = roles[0]
	}
	var condominioID *string
	if u.CondominioID != nil {
		s := u.CondominioID.String()
		condominioID = &s
	}
	return dto.UsuarioResponse{
		ID:           u.ID.String(),
		Nombre:       u.Nombre,
		Email:        u.Email,
		Roles:        roles,
		RolPrincipal: primary,
		Estado:       u.Estado,
		CondominioID: condominioID,
	}
}
