package handling

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"ravvio_server/lib"
	"ravvio_server/structs"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const maxMultipartMemory = 32 << 20 // 32 MB

// ParseProductWriteRequest decodes a product create or update payload.
// JSON bodies carry the scalar fields and attribute items; multipart
// bodies additionally carry image files under "uploaded_images" with the
// attribute items JSON-encoded in the "product_attributes" field.
func ParseProductWriteRequest(r *http.Request) (*structs.ProductWriteRequest, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return parseMultipartProduct(r)
	}

	req, err := lib.ExtractAndValidateBody[structs.ProductWriteRequest](r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lib.ErrValidation, err)
	}
	return req, nil
}

func parseMultipartProduct(r *http.Request) (*structs.ProductWriteRequest, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, fmt.Errorf("%w: invalid multipart body: %v", lib.ErrValidation, err)
	}

	req := &structs.ProductWriteRequest{}

	if name := r.FormValue("name"); name != "" {
		req.Name = &name
	}
	if description, ok := formValue(r, "description"); ok {
		req.Description = &description
	}
	if price := r.FormValue("price"); price != "" {
		parsed, err := strconv.ParseFloat(price, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid price %q", lib.ErrValidation, price)
		}
		req.Price = &parsed
	}
	if categoryID := r.FormValue("category_id"); categoryID != "" {
		id, err := uuid.Parse(categoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid category_id %q", lib.ErrValidation, categoryID)
		}
		req.CategoryID = &id
	}

	if attrs := r.FormValue("product_attributes"); attrs != "" {
		if err := json.Unmarshal([]byte(attrs), &req.ProductAttributes); err != nil {
			return nil, fmt.Errorf("%w: invalid product_attributes: %v", lib.ErrValidation, err)
		}
	}

	uploads, err := readFileHeaders(r.MultipartForm.File["uploaded_images"])
	if err != nil {
		return nil, err
	}
	req.UploadedImages = uploads

	return req, nil
}

// ParseImageUploads reads the "images" files of a multipart request, used
// by the standalone image upload endpoint.
func ParseImageUploads(r *http.Request) ([]structs.ImageUpload, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, fmt.Errorf("%w: invalid multipart body: %v", lib.ErrValidation, err)
	}

	uploads, err := readFileHeaders(r.MultipartForm.File["images"])
	if err != nil {
		return nil, err
	}
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: no images provided", lib.ErrValidation)
	}
	return uploads, nil
}

func readFileHeaders(headers []*multipart.FileHeader) ([]structs.ImageUpload, error) {
	uploads := make([]structs.ImageUpload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to open upload %q: %v", lib.ErrValidation, header.Filename, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read upload %q: %v", lib.ErrValidation, header.Filename, err)
		}

		uploads = append(uploads, structs.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return uploads, nil
}

// formValue distinguishes an empty field that was present from one that
// was omitted. Updates treat present-but-empty as "clear the value".
func formValue(r *http.Request, key string) (string, bool) {
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}
