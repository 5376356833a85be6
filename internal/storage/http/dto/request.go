// Package dto provides data transfer objects for storage HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	storageDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/domain"
	customValidation "github.com/Synnly/gestion-projet-m2-sub003/internal/validation"
)

// CreateUploadGrantRequest contains the parameters for requesting an upload grant.
// Only the extension of Filename is used to derive the object key.
type CreateUploadGrantRequest struct {
	Filename string `json:"filename"`
	Purpose  string `json:"purpose"`
}

// Validate checks if the upload grant request is valid.
func (r *CreateUploadGrantRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Filename,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Filename,
		),
		validation.Field(&r.Purpose,
			validation.Required,
			validation.In(string(storageDomain.PurposeLogo), string(storageDomain.PurposeCV)),
		),
	)
}
