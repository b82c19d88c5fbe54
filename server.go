package main

import (
	"passkey_auth_ms/config"
	"passkey_auth_ms/controller"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Server struct {
	AuthController       controller.IAuthController
	GoogleAuthController controller.IGoogleAuthController
	PasskeyController    controller.IPasskeyController
	Logger               *zap.Logger
}

// NOTE: Server Constructor
func NewServer(
	authController controller.IAuthController,
	googleAuthController controller.IGoogleAuthController,
	passkeyController controller.IPasskeyController,
	logger *zap.Logger,
) *Server {
	return &Server{
		AuthController:       authController,
		GoogleAuthController: googleAuthController,
		PasskeyController:    passkeyController,
		Logger:               logger,
	}
}

// NOTE: Start Fiber Server
func (s *Server) Start() *fiber.App {
	// NOTE: Initialize Fiber Server
	app := fiber.New()

	app.Use(middleware.RecoveryMiddleware(s.Logger))
	app.Use(middleware.LoggingMiddleware(s.Logger))
	app.Use(middleware.GlobalRateLimiter())

	// NOTE: Define API paths (context path and grouping by version)
	contextPath := app.Group(config.Conf.Application.Server.ContextPath)
	apiVersion := contextPath.Group(config.Conf.Application.Server.ApiVersion)

	authGroup := apiVersion.Group("/auth")
	authGroup.Post("/register", middleware.ValidateBody[request.RegisterRequest](), s.AuthController.Register)
	authGroup.Post("/login", middleware.ValidateBody[request.LoginRequest](), s.AuthController.Login)
	authGroup.Post("/refresh-token", middleware.ValidateBody[request.RefreshTokenReq](), s.AuthController.RefreshToken)
	authGroup.Get("/google/login", s.GoogleAuthController.GoogleLogin)
	authGroup.Get("/google/call-back", s.GoogleAuthController.GoogleCallback)
	authGroup.Post("/2fa/setup", middleware.AuthMiddleware(), s.AuthController.Setup2FA)
	authGroup.Post("/2fa/verify", middleware.AuthMiddleware(), middleware.ValidateBody[request.VerifyTwoFa](), s.AuthController.Verify2FA)

	// Every ceremony route requires an established session; the user id
	// always comes from the token, never from the request.
	passkeyGroup := apiVersion.Group("/passkeys", middleware.AuthMiddleware())
	passkeyGroup.Post("/options/registration", s.PasskeyController.RegistrationOptions)
	passkeyGroup.Post("/verify/registration", s.PasskeyController.VerifyRegistration)
	passkeyGroup.Post("/options/authentication", s.PasskeyController.AuthenticationOptions)
	passkeyGroup.Post("/verify/authentication", s.PasskeyController.VerifyAuthentication)

	return app
}
