package libs

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Enabled reports whether Cloudinary credentials are configured. Without
// them, menu images stay on local disk under the uploads directory.
func Enabled() bool {
	return os.Getenv("CLOUDINARY_URL") != "" ||
		(os.Getenv("CLOUDINARY_CLOUD_NAME") != "" &&
			os.Getenv("CLOUDINARY_API_KEY") != "" &&
			os.Getenv("CLOUDINARY_API_SECRET") != "")
}

// UploadToCloudinary pushes a locally saved image to Cloudinary and removes
// the local copy. Returns the secure URL of the uploaded asset.
func UploadToCloudinary(localPath string) (string, error) {
	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		return "", fmt.Errorf("file not found: %s", localPath)
	}

	cld, err := newClient()
	if err != nil {
		return "", err
	}

	resp, err := cld.Upload.Upload(context.Background(), localPath, uploader.UploadParams{
		PublicID: fmt.Sprintf("menu_%d", time.Now().UnixNano()),
		Folder:   "menu",
	})

	os.Remove(localPath)

	if err != nil {
		return "", err
	}
	if resp == nil || resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned no URL")
	}
	return resp.SecureURL, nil
}

func newClient() (*cloudinary.Cloudinary, error) {
	if cldURL := os.Getenv("CLOUDINARY_URL"); cldURL != "" {
		cld, err := cloudinary.NewFromURL(cldURL)
		if err != nil {
			return nil, fmt.Errorf("cloudinary init from URL failed: %w", err)
		}
		return cld, nil
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary environment variables not set")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init from params failed: %w", err)
	}
	return cld, nil
}
