package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/circuitstock/internal/client/models"
)

var errMalformed = errors.New("malformed response")

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
	User    *struct {
		Name     string `json:"name"`
		UserType string `json:"userType"`
	} `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

type registerResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// errorResponse carries whichever message field the service chose.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e errorResponse) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

type itemRequest struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	Stock          int    `json:"stock"`
	MinStock       int    `json:"min_stock"`
	Specifications string `json:"specifications"`
	Supplier       string `json:"supplier"`
}

func newItemRequest(in models.ItemInput) itemRequest {
	return itemRequest{
		Name:           in.Name,
		Category:       string(in.Category),
		Stock:          in.Stock,
		MinStock:       in.MinStock,
		Specifications: in.Specifications,
		Supplier:       string(in.Supplier),
	}
}

// itemRecord accepts both identifier spellings and both min-stock spellings.
type itemRecord struct {
	MongoID        string `json:"_id"`
	ID             string `json:"id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Stock          *int   `json:"stock"`
	MinStockSnake  *int   `json:"min_stock"`
	MinStockCamel  *int   `json:"minStock"`
	Specifications string `json:"specifications"`
	Supplier       string `json:"supplier"`
}

func (r itemRecord) item() (models.Item, error) {
	id := r.MongoID
	if id == "" {
		id = r.ID
	}
	if id == "" {
		return models.Item{}, fmt.Errorf("%w: item without id", errMalformed)
	}

	it := models.Item{
		ID:             id,
		Name:           r.Name,
		Category:       models.Category(r.Category),
		Specifications: r.Specifications,
		Supplier:       models.Supplier(r.Supplier),
	}
	if r.Stock != nil {
		it.Stock = *r.Stock
	}
	switch {
	case r.MinStockSnake != nil:
		it.MinStock = *r.MinStockSnake
	case r.MinStockCamel != nil:
		it.MinStock = *r.MinStockCamel
	}
	if it.Stock < 0 || it.MinStock < 0 {
		return models.Item{}, fmt.Errorf("%w: item %s has negative stock", errMalformed, id)
	}
	return it, nil
}

type listResponse struct {
	Count       int          `json:"count"`
	Electronics []itemRecord `json:"electronics"`
}

// decodeItems accepts either {"count":n,"electronics":[...]} or a bare array.
func decodeItems(body []byte) ([]models.Item, error) {
	var records []itemRecord

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformed, err)
		}
	} else {
		var lr listResponse
		if err := json.Unmarshal(trimmed, &lr); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformed, err)
		}
		records = lr.Electronics
	}

	items := make([]models.Item, 0, len(records))
	for _, r := range records {
		it, err := r.item()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// decodeItem reads a single record, either bare or under "electronics".
// ok is false when the body holds no recognisable record.
func decodeItem(body []byte) (models.Item, bool) {
	if len(bytes.TrimSpace(body)) == 0 {
		return models.Item{}, false
	}

	var wrapped struct {
		Electronics *itemRecord `json:"electronics"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Electronics != nil {
		if it, err := wrapped.Electronics.item(); err == nil {
			return it, true
		}
	}

	var bare itemRecord
	if err := json.Unmarshal(body, &bare); err == nil {
		if it, err := bare.item(); err == nil {
			return it, true
		}
	}
	return models.Item{}, false
}

func parseRoleOrUser(s string) models.Role {
	r, err := models.ParseRole(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || r == models.RoleNone {
		return models.RoleUser
	}
	return r
}
