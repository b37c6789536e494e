package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// ImageLimit is the backend's answer to the pre-flight check before a
// product image upload.
type ImageLimit struct {
	CurrentCount   int  `json:"currentCount"`
	MaxAllowed     int  `json:"maxAllowed"`
	CanAddMore     bool `json:"canAddMore"`
	RemainingSlots int  `json:"remainingSlots"`
}

// CheckImageLimit asks how many more images a product can take:
// GET /api/product-images/check-limit/{productId}
func (c *Client) CheckImageLimit(ctx context.Context, productID string) (*ImageLimit, error) {
	ctx, cancel := context.WithTimeout(ctx, c.pageTimeout)
	defer cancel()

	data, err := c.do(ctx, http.MethodGet, "/api/product-images/check-limit/"+url.PathEscape(productID), nil)
	if err != nil {
		return nil, err
	}

	var limit ImageLimit
	if err := json.Unmarshal(data, &limit); err != nil {
		return nil, newError(KindContract, "image limit payload is malformed", err)
	}
	return &limit, nil
}

// UploadProductImages forwards gallery files to the backend:
// POST /api/product-images/upload/{productId} (multipart "images" fields).
func (c *Client) UploadProductImages(ctx context.Context, productID string, files []*multipart.FileHeader) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return nil, newError(KindValidation, "cannot read uploaded file", err)
		}
		part, err := writer.CreateFormFile("images", fh.Filename)
		if err == nil {
			_, err = io.Copy(part, src)
		}
		src.Close()
		if err != nil {
			return nil, newError(KindNetwork, "building upload body failed", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, newError(KindNetwork, "building upload body failed", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.base+"/api/product-images/upload/"+url.PathEscape(productID), &body)
	if err != nil {
		return nil, newError(KindValidation, "bad request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, newError(KindTimeout, "upload did not finish in time", err)
		}
		return nil, newError(KindNetwork, "upload failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindNetwork, "reading upload response failed", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: KindHTTP, Status: resp.StatusCode, Message: "image upload rejected"}
	}

	var envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, newError(KindContract, "upload response is not valid JSON", err)
	}
	if !envelope.Success {
		return nil, newError(KindContract, envelope.Message, nil)
	}
	return envelope.Data, nil
}
