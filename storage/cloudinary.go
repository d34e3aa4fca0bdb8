package storage

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary configuration via environment variables:
// CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET,
// CLOUDINARY_FOLDER (optional)

var cld *cloudinary.Cloudinary

func InitializeCloudinary() {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		log.Println("Cloudinary env vars missing, image uploads disabled")
		return
	}

	c, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		log.Println("failed to initialize Cloudinary:", err)
		return
	}
	cld = c
}

// UploadBase64Image uploads a base64 data-URI image and returns its hosted URL.
func UploadBase64Image(base64ImageSrc string, publicID string) (string, error) {
	if base64ImageSrc == "" {
		return "", errors.New("empty image payload")
	}
	if cld == nil {
		return "", errors.New("cloudinary is not configured")
	}

	result, err := cld.Upload.Upload(context.Background(), base64ImageSrc, uploader.UploadParams{
		PublicID: publicID,
		Folder:   os.Getenv("CLOUDINARY_FOLDER"),
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
