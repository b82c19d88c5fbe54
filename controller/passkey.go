package controller

import (
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/dtos/response"
	"passkey_auth_ms/services"

	"github.com/gofiber/fiber/v2"
)

type IPasskeyController interface {
	RegistrationOptions(c *fiber.Ctx) error
	VerifyRegistration(c *fiber.Ctx) error
	AuthenticationOptions(c *fiber.Ctx) error
	VerifyAuthentication(c *fiber.Ctx) error
}

type PasskeyController struct {
	service services.IPasskeyService
}

func NewPasskeyController(service services.IPasskeyService) IPasskeyController {
	return &PasskeyController{service: service}
}

// Statuses and safe messages per failure kind. Underlying errors stay in
// the logs; the wire only carries these.
var ceremonyStatus = map[services.ErrorKind]int{
	services.KindNotAuthenticated:   fiber.StatusUnauthorized,
	services.KindMalformedRequest:   fiber.StatusBadRequest,
	services.KindNoChallenge:        fiber.StatusBadRequest,
	services.KindUnknownCredential:  fiber.StatusBadRequest,
	services.KindVerificationFailed: fiber.StatusUnauthorized,
	services.KindStoreFailure:       fiber.StatusInternalServerError,
}

var ceremonyMessage = map[services.ErrorKind]string{
	services.KindNotAuthenticated:   "not authenticated",
	services.KindMalformedRequest:   "malformed request",
	services.KindNoChallenge:        "no pending ceremony",
	services.KindUnknownCredential:  "unknown credential",
	services.KindVerificationFailed: "verification failed",
	services.KindStoreFailure:       "internal error",
}

func ceremonyError(c *fiber.Ctx, err error) error {
	kind := services.KindOf(err)
	status, ok := ceremonyStatus[kind]
	if !ok {
		status = fiber.StatusInternalServerError
	}
	message, ok := ceremonyMessage[kind]
	if !ok {
		message = "internal error"
	}
	return c.Status(status).JSON(response.CeremonyResult{Success: false, Error: message})
}

func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userId").(uint)
	return userID, ok
}

func (pc *PasskeyController) RegistrationOptions(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(response.CeremonyResult{Success: false, Error: "not authenticated"})
	}

	options, err := pc.service.RegistrationOptions(userID)
	if err != nil {
		return ceremonyError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(options)
}

func (pc *PasskeyController) VerifyRegistration(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(response.CeremonyResult{Success: false, Error: "not authenticated"})
	}

	var req request.VerifyRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.CeremonyResult{Success: false, Error: "malformed request"})
	}

	if err := pc.service.VerifyRegistration(userID, &req); err != nil {
		return ceremonyError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(response.CeremonyResult{Success: true})
}

func (pc *PasskeyController) AuthenticationOptions(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(response.CeremonyResult{Success: false, Error: "not authenticated"})
	}

	options, err := pc.service.AuthenticationOptions(userID)
	if err != nil {
		return ceremonyError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(options)
}

func (pc *PasskeyController) VerifyAuthentication(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(response.CeremonyResult{Success: false, Error: "not authenticated"})
	}

	var req request.VerifyAuthenticationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.CeremonyResult{Success: false, Error: "malformed request"})
	}

	if err := pc.service.VerifyAuthentication(userID, &req); err != nil {
		return ceremonyError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(response.CeremonyResult{Success: true})
}
