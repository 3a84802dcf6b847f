package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/go-playground/validator/v10"
	"github.com/salonkit/refunds.api.salonkit.io/config"
	"github.com/salonkit/refunds.api.salonkit.io/models"
)

// SalonDirectory resolves the registered owner and most recent payment for a
// salon. It is the source of every immutable field copied onto a refund
// request at creation time.
type SalonDirectory interface {
	GetSalon(req *http.Request, salonID string) (*models.SalonResource, ResponseType, error)
}

// SalonAPIClient is an HTTP implementation of SalonDirectory backed by the
// platform's Salon Directory API
type SalonAPIClient struct {
	Config config.Config
}

// GetSalon fetches and validates the salon resource for the given id.
// If the salon is not found in the directory, nil is returned.
func (c *SalonAPIClient) GetSalon(req *http.Request, salonID string) (*models.SalonResource, ResponseType, error) {

	log.TraceR(req, "GET salon resource", log.Data{"salon_id": salonID})

	salonReq, err := http.NewRequest("GET", fmt.Sprintf("%s/salons/%s", c.Config.SalonAPIURL, salonID), nil)
	if err != nil {
		return nil, Error, fmt.Errorf("failed to create salon directory request: [%v]", err)
	}

	salonReq.Header.Add("accept", "application/json")
	salonReq.Header.Add("authorization", "Bearer "+c.Config.SalonAPIKey)

	resp, err := http.DefaultClient.Do(salonReq)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting salon resource: [%v]", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, NotFound, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, Error, fmt.Errorf("salon directory returned status [%d]", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Error, fmt.Errorf("error reading salon resource: [%v]", err)
	}

	salon := &models.SalonResource{}
	err = json.Unmarshal(body, salon)
	if err != nil {
		return nil, InvalidData, fmt.Errorf("error reading salon resource: [%v]", err)
	}

	validate := validator.New()
	err = validate.Struct(salon)
	if err != nil {
		return nil, InvalidData, fmt.Errorf("invalid salon resource: [%v]", err)
	}

	return salon, Success, nil
}
