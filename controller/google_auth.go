package controller

import (
	"passkey_auth_ms/services"
	"passkey_auth_ms/util"

	"github.com/gofiber/fiber/v2"
)

type IGoogleAuthController interface {
	GoogleLogin(c *fiber.Ctx) error
	GoogleCallback(c *fiber.Ctx) error
}

type GoogleAuthController struct {
	googleService services.IGoogleAuthService
}

func NewGoogleAuthController(googleService services.IGoogleAuthService) IGoogleAuthController {
	return &GoogleAuthController{googleService: googleService}
}

func (ac *GoogleAuthController) GoogleLogin(c *fiber.Ctx) error {
	state, err := util.GenerateStateToken()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    state,
		HTTPOnly: true,
		SameSite: "Lax",
	})
	url := ac.googleService.LoginGoogle(state)

	return c.Redirect(url, fiber.StatusTemporaryRedirect)
}

func (ac *GoogleAuthController) GoogleCallback(c *fiber.Ctx) error {
	state := c.Query("state")
	if state == "" || state != c.Cookies("oauth_state") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "state mismatch",
		})
	}
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "code is required",
		})
	}
	token, err := ac.googleService.ExchangeGoogleToken(code)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	idToken, ok := token.Extra("id_token").(string)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "id_token is required",
		})
	}
	userInfo, err := ac.googleService.VerifyGoogleIDToken(idToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	tokens, err := ac.googleService.LoginOrRegister(userInfo)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(tokens)
}
