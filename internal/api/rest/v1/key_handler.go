package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// KeyHandler defines the interface for handling key pair operations
type KeyHandler interface {
	Generate(ctx *gin.Context)
	ListMetadata(ctx *gin.Context)
	GetMetadataByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	EncryptText(ctx *gin.Context)
	DecryptText(ctx *gin.Context)
}

// keyHandler struct holds the services
type keyHandler struct {
	keyPairGenerationService keys.KeyPairGenerationService
	keyPairMetadataService   keys.KeyPairMetadataService
	cipherService            keys.CipherService
}

// NewKeyHandler creates a new KeyHandler
func NewKeyHandler(keyPairGenerationService keys.KeyPairGenerationService, keyPairMetadataService keys.KeyPairMetadataService, cipherService keys.CipherService) KeyHandler {
	return &keyHandler{
		keyPairGenerationService: keyPairGenerationService,
		keyPairMetadataService:   keyPairMetadataService,
		cipherService:            cipherService,
	}
}

// Generate handles the POST request to generate and store an RSA key pair
// @Summary Generate an RSA key pair
// @Description Generate a textbook RSA key pair with the requested modulus size and store it.
// @Tags Key
// @Accept json
// @Produce json
// @Param requestBody body GenerateKeyPairRequest true "Key pair parameters"
// @Success 201 {object} KeyPairMetaResponse
// @Failure 400 {object} ErrorResponse
// @Router /keys [post]
func (handler *keyHandler) Generate(ctx *gin.Context) {
	var request GenerateKeyPairRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid key data: %v", err.Error())})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	userID := uuid.New().String() // TODO(MGTheTrain): extract user id from JWT

	keyPairMeta, err := handler.keyPairGenerationService.Generate(ctx, userID, request.Bits)
	if err != nil {
		ctx.JSON(statusFor(err), ErrorResponse{Message: fmt.Sprintf("error generating key pair: %v", err.Error())})
		return
	}

	ctx.JSON(http.StatusCreated, NewKeyPairMetaResponse(keyPairMeta))
}

// ListMetadata handles the GET request to list key pairs with optional query parameters
// @Summary List key pairs based on query parameters
// @Description Fetch a list of key pairs filtered by owner, size and creation date, with pagination and sorting options.
// @Tags Key
// @Accept json
// @Produce json
// @Param userId query string false "Owner ID"
// @Param bits query int false "Requested modulus size"
// @Param dateTimeCreated query string false "Key Creation Date (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} KeyPairMetaResponse
// @Failure 400 {object} ErrorResponse
// @Router /keys [get]
func (handler *keyHandler) ListMetadata(ctx *gin.Context) {
	query, err := parseKeyPairQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid query: %v", err.Error())})
		return
	}

	if err := query.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	keyPairMetas, err := handler.keyPairMetadataService.List(ctx, query)
	if err != nil {
		ctx.JSON(statusFor(err), ErrorResponse{Message: fmt.Sprintf("list query failed: %v", err.Error())})
		return
	}

	listResponse := []KeyPairMetaResponse{}
	for _, keyPairMeta := range keyPairMetas {
		listResponse = append(listResponse, NewKeyPairMetaResponse(keyPairMeta))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetMetadataByID handles the GET request to retrieve a key pair by ID
// @Summary Retrieve a key pair by ID
// @Description Fetch the public half and metadata of a stored key pair.
// @Tags Key
// @Accept json
// @Produce json
// @Param id path string true "Key pair ID"
// @Success 200 {object} KeyPairMetaResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id} [get]
func (handler *keyHandler) GetMetadataByID(ctx *gin.Context) {
	keyPairID := ctx.Param("id")

	keyPairMeta, err := handler.keyPairMetadataService.GetByID(ctx, keyPairID)
	if err != nil {
		ctx.JSON(statusFor(err), ErrorResponse{Message: fmt.Sprintf("could not get key pair with id %s: %v", keyPairID, err.Error())})
		return
	}

	ctx.JSON(http.StatusOK, NewKeyPairMetaResponse(keyPairMeta))
}

// DeleteByID handles the DELETE request to delete a key pair by ID
// @Summary Delete a key pair by ID
// @Tags Key
// @Produce json
// @Param id path string true "Key pair ID"
// @Success 204 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id} [delete]
func (handler *keyHandler) DeleteByID(ctx *gin.Context) {
	keyPairID := ctx.Param("id")

	if err := handler.keyPairMetadataService.DeleteByID(ctx, keyPairID); err != nil {
		ctx.JSON(statusFor(err), ErrorResponse{Message: fmt.Sprintf("error deleting key pair with id %s: %v", keyPairID, err.Error())})
		return
	}

	ctx.JSON(http.StatusNoContent, InfoResponse{Message: fmt.Sprintf("deleted key pair with id %s", keyPairID)})
}

// EncryptText handles the POST request to encrypt text with a stored public key
// @Summary Encrypt text
// @Description Encrypt plaintext block by block with the public key of a stored key pair.
// @Tags Key
// @Accept json
// @Produce json
// @Param id path string true "Key pair ID"
// @Param requestBody body EncryptTextRequest true "Plaintext as text or base64"
// @Success 200 {object} EncryptTextResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /keys/{id}/encrypt [post]
func (handler *keyHandler) EncryptText(ctx *gin.Context) {
	keyPairID := ctx.Param("id")

	var request EncryptTextRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid request: %v", err.Error())})
		return
	}

	plaintext, err := request.Bytes()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid request: %v", err.Error())})
		return
	}

	ciphertext, err := handler.cipherService.EncryptText(ctx, keyPairID, plaintext)
	if err != nil {
		ctx.JSON(statusFor(err), ErrorResponse{Message: fmt.Sprintf("encryption failed: %v", err.Error())})
		return
	}

	ctx.JSON(http.StatusOK, EncryptTextResponse{KeyPairID: keyPairID, Ciphertext: ciphertext})
}

// DecryptText handles the POST request to decrypt hexadecimal blocks with a stored private key
// @Summary Decrypt text
// @Description Decrypt newline-delimited hexadecimal blocks with the private key of a stored key pair.
// @Tags Key
// @Accept json
// @Produce json
// @Param id path string true "Key pair ID"
// @Param requestBody body DecryptTextRequest true "Ciphertext"
// @Success 200 {object} DecryptTextResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /keys/{id}/decrypt [post]
func (handler *keyHandler) DecryptText(ctx *gin.Context) {
	keyPairID := ctx.Param("id")

	var request DecryptTextRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid request: %v", err.Error())})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	plaintext, err := handler.cipherService.DecryptText(ctx, keyPairID, request.Ciphertext)
	if err != nil {
		ctx.JSON(statusFor(err), ErrorResponse{Message: fmt.Sprintf("decryption failed: %v", err.Error())})
		return
	}

	ctx.JSON(http.StatusOK, DecryptTextResponse{
		KeyPairID:       keyPairID,
		Plaintext:       string(plaintext),
		PlaintextBase64: plaintext,
	})
}

func parseKeyPairQuery(ctx *gin.Context) (*keys.KeyPairQuery, error) {
	query := keys.NewKeyPairQuery()

	if userID := ctx.Query("userId"); len(userID) > 0 {
		query.UserID = userID
	}

	if bits := ctx.Query("bits"); len(bits) > 0 {
		parsed, err := strconv.ParseUint(bits, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bits: %w", err)
		}
		query.Bits = uint32(parsed)
	}

	if dateTimeCreated := ctx.Query("dateTimeCreated"); len(dateTimeCreated) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, dateTimeCreated)
		if err != nil {
			return nil, fmt.Errorf("dateTimeCreated: %w", err)
		}
		query.DateTimeCreated = parsedTime
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		parsed, err := strconv.Atoi(limit)
		if err != nil {
			return nil, fmt.Errorf("limit: %w", err)
		}
		query.Limit = parsed
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		parsed, err := strconv.Atoi(offset)
		if err != nil {
			return nil, fmt.Errorf("offset: %w", err)
		}
		query.Offset = parsed
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	return query, nil
}

// statusFor maps an error kind to the HTTP status code reported to the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, keys.ErrKeyPairNotFound):
		return http.StatusNotFound
	case errors.Is(err, cryptoalg.ErrInvalidParameter),
		errors.Is(err, cryptoalg.ErrKeyTooSmall),
		errors.Is(err, cryptoalg.ErrMalformedLine):
		return http.StatusBadRequest
	case errors.Is(err, cryptoalg.ErrBlockTooLarge):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
