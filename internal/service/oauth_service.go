package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"expertline/internal/config"
	"expertline/internal/model"
	"expertline/internal/repository"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

var ErrEmailNotVerified = errors.New("Google 邮箱未验证")

// GoogleUserInfo Google 用户信息结构
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

type OAuthService struct {
	UserRepo *repository.UserRepository
	Auth     *AuthService
	oauth    *oauth2.Config
}

func NewOAuthService(userRepo *repository.UserRepository, auth *AuthService, cfg *config.Config) *OAuthService {
	siteURL := cfg.Server.SiteURL
	if siteURL == "" {
		siteURL = "http://localhost:" + cfg.Server.Port
	}

	return &OAuthService{
		UserRepo: userRepo,
		Auth:     auth,
		oauth: &oauth2.Config{
			ClientID:     cfg.OAuth.GoogleClientID,
			ClientSecret: cfg.OAuth.GoogleClientSecret,
			RedirectURL:  siteURL + "/api/auth/google/callback",
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

func (s *OAuthService) Enabled() bool {
	return s.oauth.ClientID != "" && s.oauth.ClientSecret != ""
}

// GenerateStateToken 生成随机 state token
func GenerateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func (s *OAuthService) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// HandleCallback 交换授权码、拉取用户信息、查找或自动注册，返回本站 JWT
func (s *OAuthService) HandleCallback(ctx context.Context, code string) (*AuthResponse, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("获取访问令牌失败: %w", err)
	}

	info, err := s.fetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("获取用户信息失败: %w", err)
	}
	if !info.VerifiedEmail {
		return nil, ErrEmailNotVerified
	}

	user, err := s.UserRepo.FindByGoogleIDOrEmail(info.ID, info.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user, err = s.registerFromGoogle(info)
		if err != nil {
			return nil, err
		}
	} else if user.GoogleID == "" {
		// 老用户首次用 Google 登录，补绑定
		user.GoogleID = info.ID
		now := time.Now()
		user.EmailVerified = &now
		if err := s.UserRepo.Update(user); err != nil {
			return nil, err
		}
	}

	user.LastLogin = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	return s.Auth.issueToken(user)
}

// registerFromGoogle 自动注册，用户名冲突时追加数字后缀
func (s *OAuthService) registerFromGoogle(info *GoogleUserInfo) (*model.User, error) {
	base := info.GivenName
	if base == "" {
		base = strings.Split(info.Email, "@")[0]
	}
	base = strings.ToLower(strings.ReplaceAll(base, " ", ""))

	username := base
	for i := 1; ; i++ {
		_, err := s.UserRepo.FindByUsername(username)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
		username = fmt.Sprintf("%s%d", base, i)
	}

	now := time.Now()
	user := &model.User{
		Email:         info.Email,
		Username:      username,
		Name:          info.Name,
		Image:         info.Picture,
		Role:          model.RoleUser,
		GoogleID:      info.ID,
		EmailVerified: &now,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *OAuthService) fetchUserInfo(ctx context.Context, accessToken string) (*GoogleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, "GET",
		"https://www.googleapis.com/oauth2/v2/userinfo?access_token="+accessToken, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var info GoogleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
