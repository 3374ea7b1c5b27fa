package helper

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/gofiber/fiber/v2/log"

	"sixthsoul_bff/config"
)

func InitCloudinary(s config.Settings) *cloudinary.Cloudinary {
	cld, err := cloudinary.NewFromParams(
		s.CloudinaryName,
		s.CloudinaryKey,
		s.CloudinarySecret,
	)
	if err != nil {
		log.Warnf("Cloudinary init failed: %v", err)
		return nil
	}
	return cld
}

// UploadSignature là bộ tham số để trình duyệt tải ảnh thẳng lên Cloudinary
type UploadSignature struct {
	CloudName string `json:"cloudName"`
	APIKey    string `json:"apiKey"`
	Folder    string `json:"folder"`
	PublicID  string `json:"publicId"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
}

// SignReviewUpload ký tham số tải ảnh đánh giá của một người dùng cho một sản phẩm
func SignReviewUpload(cld *cloudinary.Cloudinary, userID, productID int64, now time.Time) (UploadSignature, error) {
	if cld == nil {
		return UploadSignature{}, fmt.Errorf("cloudinary is not configured")
	}
	out := UploadSignature{
		CloudName: cld.Config.Cloud.CloudName,
		APIKey:    cld.Config.Cloud.APIKey,
		Folder:    "reviews",
		PublicID:  fmt.Sprintf("review_%d_%d_%d", productID, userID, now.UnixNano()),
		Timestamp: now.Unix(),
	}
	params := url.Values{}
	params.Set("folder", out.Folder)
	params.Set("public_id", out.PublicID)
	params.Set("timestamp", strconv.FormatInt(out.Timestamp, 10))

	sig, err := api.SignParameters(params, cld.Config.Cloud.APISecret)
	if err != nil {
		return UploadSignature{}, fmt.Errorf("sign upload params: %w", err)
	}
	out.Signature = sig
	return out, nil
}
