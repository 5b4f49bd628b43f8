package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/akovalyov/storefront-api/internal/order"
)

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"message": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

// writeOrderError maps order-domain errors onto the wire contract: client
// errors carry the offending field names, indexes, or figures; anything
// unrecognized is a 500 with a generic message (detail only outside
// production).
func writeOrderError(w http.ResponseWriter, err error, genericMessage string, dev bool) {
	var (
		missingFields   *order.MissingFieldsError
		itemMalformed   *order.ItemMalformedError
		productNotFound *order.ItemProductNotFoundError
		invalidQuantity *order.InvalidQuantityError
		insufficient    *order.InsufficientStockError
		invalidPayment  *order.InvalidPaymentMethodError
		invalidStatus   *order.InvalidStatusError
	)

	switch {
	case errors.Is(err, order.ErrMissingBody):
		respondWithError(w, http.StatusBadRequest, "Request body is missing")
	case errors.As(err, &missingFields):
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message":       "Missing required fields",
			"missingFields": missingFields.Fields,
		})
	case errors.Is(err, order.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, "User not found")
	case errors.As(err, &itemMalformed):
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message":   err.Error(),
			"itemIndex": itemMalformed.Index,
		})
	case errors.As(err, &productNotFound):
		respondWithJSON(w, http.StatusNotFound, map[string]interface{}{
			"message":   "Product not found: " + productNotFound.ProductID,
			"itemIndex": productNotFound.Index,
		})
	case errors.As(err, &invalidQuantity):
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message":     "Invalid quantity for product " + invalidQuantity.ProductName,
			"itemIndex":   invalidQuantity.Index,
			"minQuantity": 1,
		})
	case errors.As(err, &insufficient):
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message":   "Insufficient stock for " + insufficient.ProductName,
			"itemIndex": insufficient.Index,
			"available": insufficient.Available,
			"requested": insufficient.Requested,
		})
	case errors.As(err, &invalidPayment):
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message":             "Invalid payment method",
			"validPaymentMethods": invalidPayment.Valid,
		})
	case errors.As(err, &invalidStatus):
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message":       "Invalid status",
			"validStatuses": invalidStatus.Valid,
		})
	case errors.Is(err, order.ErrOrderNotFound):
		respondWithError(w, http.StatusNotFound, "Order not found")
	default:
		log.Error().Err(err).Msg(genericMessage)
		payload := map[string]interface{}{"message": genericMessage}
		if dev {
			payload["error"] = err.Error()
		}
		respondWithJSON(w, http.StatusInternalServerError, payload)
	}
}
