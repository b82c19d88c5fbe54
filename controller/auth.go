package controller

import (
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/services"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	Register(c *fiber.Ctx) error
	Login(c *fiber.Ctx) error
	RefreshToken(c *fiber.Ctx) error
	Setup2FA(c *fiber.Ctx) error
	Verify2FA(c *fiber.Ctx) error
}

type AuthController struct {
	userService services.IUserService
}

func NewAuthController(service services.IUserService) IAuthController {
	return &AuthController{userService: service}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	req, ok := c.Locals("body").(*request.RegisterRequest)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	res, err := ac.userService.Register(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	req, ok := c.Locals("body").(*request.LoginRequest)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	tokens, err := ac.userService.Login(req)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid email or password",
		})
	}
	return c.Status(fiber.StatusOK).JSON(tokens)
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	req, ok := c.Locals("body").(*request.RefreshTokenReq)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	tokens, err := ac.userService.RefreshToken(req)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(tokens)
}

func (ac *AuthController) Setup2FA(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "not authenticated",
		})
	}
	res, err := ac.userService.Setup2FA(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

func (ac *AuthController) Verify2FA(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "not authenticated",
		})
	}
	req, reqOk := c.Locals("body").(*request.VerifyTwoFa)
	if !reqOk {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	valid, err := ac.userService.Verify2FA(userID, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if !valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid code",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "2FA verified",
	})
}
