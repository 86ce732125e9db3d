package favorites

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-favorites/middleware/jwtware"
)

type HTTPControllerRoutes struct {
	Register       string
	Token          string
	CurrentUser    string
	PasswordChange string
	FavoritesList  string
}

// HTTPController wires the JSON API: registration, token login, and the
// guarded account and favorites endpoints.
type HTTPController struct {
	Logger Logger
	Repo   RepositoryManager
	Routes *HTTPControllerRoutes
	auther Authenticator
	guard  *Guard
	cfg    Config
}

func NewHTTPController(repo RepositoryManager, auther Authenticator, guard *Guard, cfg Config) *HTTPController {
	return &HTTPController{
		Logger: defLogger{},
		Repo:   repo,
		auther: auther,
		guard:  guard,
		cfg:    cfg,
		Routes: &HTTPControllerRoutes{
			Register:       "/users",
			Token:          "/token",
			CurrentUser:    "/users/me",
			PasswordChange: "/users/me/password",
			FavoritesList:  "/users/me/favorites",
		},
	}
}

func (a *HTTPController) WithLogger(l Logger) *HTTPController {
	if l != nil {
		a.Logger = l
	}
	return a
}

// RegisterRoutes mounts the API on the given app. Protected routes run
// behind the session guard middleware.
func (a *HTTPController) RegisterRoutes(app *fiber.App) {
	app.Post(a.Routes.Register, a.RegistrationCreate)
	app.Post(a.Routes.Token, a.TokenCreate)

	protected := jwtware.New(jwtware.Config{
		ContextKey: a.cfg.GetContextKey(),
		AuthScheme: a.cfg.GetAuthScheme(),
		ResolveUser: func(ctx context.Context, token string) (any, error) {
			return a.guard.ResolveUser(ctx, token)
		},
	})

	app.Get(a.Routes.CurrentUser, protected, a.CurrentUserShow)
	app.Delete(a.Routes.CurrentUser, protected, a.CurrentUserDelete)
	app.Put(a.Routes.PasswordChange, protected, a.PasswordUpdate)
	app.Post(a.Routes.FavoritesList, protected, a.FavoriteCreate)
	app.Get(a.Routes.FavoritesList, protected, a.FavoriteList)
}

// CurrentUser retrieves the principal the guard stored for this request
func CurrentUser(c *fiber.Ctx, key string) (*User, error) {
	principal := c.Locals(key)
	if principal == nil {
		return nil, ErrUnauthenticated
	}

	user, ok := principal.(*User)
	if !ok || user == nil {
		return nil, ErrUnauthenticated
	}

	return user, nil
}

// userResponse is the public projection of a User; it never carries the
// password hash.
type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegistrationCreatePayload is the registration body
type RegistrationCreatePayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will validate the payload
func (r RegistrationCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

func (a *HTTPController) RegistrationCreate(c *fiber.Ctx) error {
	payload := new(RegistrationCreatePayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register user parse payload", "error", err)
		return a.handleError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register user validate payload", "error", err)
		return a.handleError(c, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithCode(goerrors.CodeBadRequest))
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		return a.handleError(c, err)
	}

	user, err := a.Repo.Users().Register(c.UserContext(), &User{
		Email:        payload.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return a.handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(userResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}

// TokenCreatePayload is the OAuth2-style password form
type TokenCreatePayload struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r TokenCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *HTTPController) TokenCreate(c *fiber.Ctx) error {
	payload := new(TokenCreatePayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("token create parse payload", "error", err)
		return a.handleError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return a.handleError(c, ErrInvalidCredentials)
	}

	token, err := a.auther.Login(c.UserContext(), payload.Username, payload.Password)
	if err != nil {
		return a.handleError(c, err)
	}

	return c.JSON(tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (a *HTTPController) CurrentUserShow(c *fiber.Ctx) error {
	user, err := CurrentUser(c, a.cfg.GetContextKey())
	if err != nil {
		return a.handleError(c, err)
	}

	return c.JSON(userResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}

func (a *HTTPController) CurrentUserDelete(c *fiber.Ctx) error {
	user, err := CurrentUser(c, a.cfg.GetContextKey())
	if err != nil {
		return a.handleError(c, err)
	}

	if err := a.Repo.Users().Delete(c.UserContext(), user); err != nil {
		return a.handleError(c, err)
	}

	return c.JSON(userResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}

// PasswordUpdatePayload carries a password change request
type PasswordUpdatePayload struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Validate will validate the payload
func (r PasswordUpdatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 100)),
	)
}

func (a *HTTPController) PasswordUpdate(c *fiber.Ctx) error {
	user, err := CurrentUser(c, a.cfg.GetContextKey())
	if err != nil {
		return a.handleError(c, err)
	}

	payload := new(PasswordUpdatePayload)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("password update parse payload", "error", err)
		return a.handleError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("password update validate payload", "error", err)
		return a.handleError(c, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithCode(goerrors.CodeBadRequest))
	}

	hash, err := HashPassword(payload.NewPassword)
	if err != nil {
		return a.handleError(c, err)
	}

	// Re-read, compare, and replace under one transaction so a concurrent
	// change cannot slip between the old-password check and the update.
	err = a.Repo.RunInTx(c.UserContext(), nil, func(ctx context.Context, tx bun.Tx) error {
		current, err := a.Repo.Users().GetByEmailTx(ctx, tx, user.Email)
		if err != nil {
			return err
		}

		if err := ComparePasswordAndHash(payload.OldPassword, current.PasswordHash); err != nil {
			return ErrIncorrectPassword
		}

		return a.Repo.Users().UpdatePasswordHashTx(ctx, tx, user.ID, hash)
	})
	if err != nil {
		return a.handleError(c, err)
	}

	return c.JSON(userResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}

// FavoriteCreatePayload is one album to add to the principal's list
type FavoriteCreatePayload struct {
	AlbumID     string `json:"album_id"`
	AlbumName   string `json:"album_name"`
	ArtistName  string `json:"artist_name"`
	CoverArtURL string `json:"cover_art_url"`
}

// Validate will validate the payload
func (r FavoriteCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AlbumID, validation.Required, is.UUID),
		validation.Field(&r.AlbumName, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.ArtistName, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.CoverArtURL, is.URL),
	)
}

func (a *HTTPController) FavoriteCreate(c *fiber.Ctx) error {
	user, err := CurrentUser(c, a.cfg.GetContextKey())
	if err != nil {
		return a.handleError(c, err)
	}

	payload := new(FavoriteCreatePayload)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("favorite create parse payload", "error", err)
		return a.handleError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("favorite create validate payload", "error", err)
		return a.handleError(c, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithCode(goerrors.CodeBadRequest))
	}

	record, err := a.Repo.Favorites().Create(c.UserContext(), &Favorite{
		UserID:      user.ID,
		AlbumID:     payload.AlbumID,
		AlbumName:   payload.AlbumName,
		ArtistName:  payload.ArtistName,
		CoverArtURL: payload.CoverArtURL,
	})
	if err != nil {
		return a.handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (a *HTTPController) FavoriteList(c *fiber.Ctx) error {
	user, err := CurrentUser(c, a.cfg.GetContextKey())
	if err != nil {
		return a.handleError(c, err)
	}

	records, err := a.Repo.Favorites().ListByUser(c.UserContext(), user.ID)
	if err != nil {
		return a.handleError(c, err)
	}

	if records == nil {
		records = []*Favorite{}
	}

	return c.JSON(records)
}

func (a *HTTPController) handleError(c *fiber.Ctx, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "an unexpected server error occurred").
			WithCode(goerrors.CodeInternal)
	}

	a.Logger.Error(
		"request error",
		"error", richErr.Message,
		"category", richErr.Category,
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	if richErr.Category == goerrors.CategoryAuth {
		c.Set(fiber.HeaderWWWAuthenticate, a.cfg.GetAuthScheme())
	}

	code := richErr.Code
	if code <= 0 {
		code = fiber.StatusInternalServerError
	}

	return c.Status(code).JSON(fiber.Map{
		"detail": richErr.Message,
	})
}
