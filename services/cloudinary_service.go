package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/cloudinary/cloudinary-go/v2"
)

// CardTransformation crops product images to the grid tile's aspect ratio.
const CardTransformation = "c_fill,g_auto,w_480,h_600,q_auto,f_auto"

// CloudinaryService rewrites catalog image URLs hosted on the configured
// Cloudinary cloud into delivery URLs carrying a transformation.
type CloudinaryService struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

var (
	cloudinaryMu      sync.RWMutex
	cloudinaryService *CloudinaryService
)

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	if cloudName == "" {
		return nil, fmt.Errorf("cloudinary cloud name is required")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryService{cld: cld, cloudName: cloudName}, nil
}

// InitCloudinary installs the shared service. An empty cloud name leaves image
// URLs untouched.
func InitCloudinary(cloudName, apiKey, apiSecret string) error {
	if cloudName == "" {
		SetCloudinaryService(nil)
		return nil
	}
	svc, err := NewCloudinaryService(cloudName, apiKey, apiSecret)
	if err != nil {
		return err
	}
	SetCloudinaryService(svc)
	return nil
}

func SetCloudinaryService(svc *CloudinaryService) {
	cloudinaryMu.Lock()
	cloudinaryService = svc
	cloudinaryMu.Unlock()
}

// Cloudinary returns the shared service, nil when not configured.
func Cloudinary() *CloudinaryService {
	cloudinaryMu.RLock()
	defer cloudinaryMu.RUnlock()
	return cloudinaryService
}

var (
	versionSegment = regexp.MustCompile(`^v\d+$`)
	transformParam = regexp.MustCompile(`^[a-z]{1,3}_[^,]+$`)
)

// PublicID extracts the public ID (with extension) from a delivery URL of
// this cloud: "/<cloud>/image/upload/[transformations/][v123/]<public id>".
// Existing transformations and the version are dropped.
func (s *CloudinaryService) PublicID(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || !strings.HasSuffix(u.Host, "cloudinary.com") {
		return "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 4 || parts[0] != s.cloudName || parts[1] != "image" || parts[2] != "upload" {
		return "", false
	}

	rest := parts[3:]
	for i, seg := range rest {
		if versionSegment.MatchString(seg) {
			rest = rest[i+1:]
			break
		}
	}
	for len(rest) > 1 && isTransformation(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return "", false
	}
	return strings.Join(rest, "/"), true
}

func isTransformation(seg string) bool {
	for _, p := range strings.Split(seg, ",") {
		if !transformParam.MatchString(p) {
			return false
		}
	}
	return true
}

// Thumbnail returns rawURL delivered with transformation. URLs from other
// hosts, or any failure, yield rawURL unchanged.
func (s *CloudinaryService) Thumbnail(rawURL, transformation string) string {
	if s == nil || rawURL == "" {
		return rawURL
	}
	publicID, ok := s.PublicID(rawURL)
	if !ok {
		return rawURL
	}
	img, err := s.cld.Image(publicID)
	if err != nil {
		return rawURL
	}
	img.Transformation = transformation
	out, err := img.String()
	if err != nil || out == "" {
		return rawURL
	}
	return out
}

// ApplyCardThumbnails rewrites the image of every card in place.
func (s *CloudinaryService) ApplyCardThumbnails(cards []models.ProductCard) {
	if s == nil {
		return
	}
	for i := range cards {
		cards[i].Image = s.Thumbnail(cards[i].Image, CardTransformation)
	}
}
