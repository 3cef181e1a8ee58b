package controller

import (
	"ctchen222/blog-api/internal/api/response"
	"ctchen222/blog-api/internal/api/service"
	"ctchen222/blog-api/internal/validator"
	"ctchen222/blog-api/pkg/proto"

	"github.com/gin-gonic/gin"
)

// UserController handles user-related HTTP requests.
type UserController struct {
	userService service.UserService
	contract    *Contract
}

// NewUserController creates a new UserController.
func NewUserController(userService service.UserService, contract *Contract) *UserController {
	return &UserController{
		userService: userService,
		contract:    contract,
	}
}

// Register handles POST /users.
func (uc *UserController) Register(c *gin.Context) {
	response.Write(c, uc.register(c))
}

func (uc *UserController) register(c *gin.Context) response.RegisterUserResponse {
	ctx := c.Request.Context()

	var req proto.RegisterUserRequest
	if err := uc.contract.bindJSON(c, &req); err != nil {
		return response.RegisterUserFromError(err)
	}
	if err := uc.contract.validate(ctx, func() error { return validator.Struct(req) }); err != nil {
		return response.RegisterUserFromError(err)
	}

	user, err := uc.userService.Register(ctx, &req)
	if err != nil {
		return response.RegisterUserFromError(classify(ctx, err))
	}
	return response.UserCreated{User: proto.NewUser(user)}
}

// Authenticate handles POST /auth.
func (uc *UserController) Authenticate(c *gin.Context) {
	response.Write(c, uc.authenticate(c))
}

func (uc *UserController) authenticate(c *gin.Context) response.AuthenticateResponse {
	ctx := c.Request.Context()

	var req proto.AuthRequest
	if err := uc.contract.bindJSON(c, &req); err != nil {
		return response.AuthenticateFromError(err)
	}
	if err := uc.contract.validate(ctx, func() error { return validator.Struct(req) }); err != nil {
		return response.AuthenticateFromError(err)
	}

	token, err := uc.userService.Authenticate(ctx, &req)
	if err != nil {
		return response.AuthenticateFromError(classify(ctx, err))
	}
	return response.TokenIssued{Token: proto.Token{Token: token}}
}
