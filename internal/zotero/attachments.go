package zotero

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// uploadAuthorization is the store's answer to an upload-authorization
// request. Exists short-circuits the whole transfer: the store already has a
// copy of these exact bytes.
type uploadAuthorization struct {
	Exists      int    `json:"exists"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Prefix      string `json:"prefix"`
	Suffix      string `json:"suffix"`
	UploadKey   string `json:"uploadKey"`
}

// UploadAttachmentFile sends the binary payload of a previously registered
// attachment item. The protocol is authorize → transfer → register-upload;
// the attachment is only considered uploaded once the final registration
// returns. No step is retried internally.
func (c *Client) UploadAttachmentFile(ctx context.Context, ref LibraryRef, key, filename string, data []byte) error {
	sum := md5.Sum(data)

	form := url.Values{}
	form.Set("md5", hex.EncodeToString(sum[:]))
	form.Set("filename", filename)
	form.Set("filesize", strconv.Itoa(len(data)))
	form.Set("mtime", strconv.FormatInt(time.Now().UnixMilli(), 10))

	auth, err := c.authorizeUpload(ctx, ref, key, form)
	if err != nil {
		return fmt.Errorf("authorize upload: %w", err)
	}
	if auth.Exists == 1 {
		return nil
	}

	if err := c.transferPayload(ctx, auth, data); err != nil {
		return fmt.Errorf("transfer payload: %w", err)
	}

	regForm := url.Values{}
	regForm.Set("upload", auth.UploadKey)
	if err := c.registerUpload(ctx, ref, key, regForm); err != nil {
		return fmt.Errorf("register upload: %w", err)
	}
	return nil
}

func (c *Client) authorizeUpload(ctx context.Context, ref LibraryRef, key string, form url.Values) (*uploadAuthorization, error) {
	u := c.url(ref.prefix(), "items", key, "file")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader([]byte(form.Encode())))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("If-None-Match", "*")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	var auth uploadAuthorization
	if err := jsonDecode(resp.Body, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// transferPayload POSTs prefix + data + suffix to the storage URL handed out
// by the authorization step. The storage endpoint is not the API host, so no
// API headers are attached.
func (c *Client) transferPayload(ctx context.Context, auth *uploadAuthorization, data []byte) error {
	body := make([]byte, 0, len(auth.Prefix)+len(data)+len(auth.Suffix))
	body = append(body, auth.Prefix...)
	body = append(body, data...)
	body = append(body, auth.Suffix...)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, auth.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", auth.ContentType)

	resp, err := c.uploads.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK &&
		resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("storage endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) registerUpload(ctx context.Context, ref LibraryRef, key string, form url.Values) error {
	u := c.url(ref.prefix(), "items", key, "file")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader([]byte(form.Encode())))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("If-None-Match", "*")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	return checkStatus(resp)
}
