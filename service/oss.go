package service

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/models"
	"Storefront/pkg/log"
	"Storefront/pkg/snowflake"
	"Storefront/types"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
	"gorm.io/gorm"
)

const maxImageSize int64 = 10 << 20 // 10MB

var (
	allowedMime = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	}
	allowedFmt = map[string]bool{"jpeg": true, "png": true, "webp": true}
)

// ObjectStore OSS 客户端中用到的部分, *oss.Client 满足
type ObjectStore interface {
	PutObject(ctx context.Context, request *oss.PutObjectRequest, optFns ...func(*oss.Options)) (*oss.PutObjectResult, error)
	DeleteObject(ctx context.Context, request *oss.DeleteObjectRequest, optFns ...func(*oss.Options)) (*oss.DeleteObjectResult, error)
}

type ImageService struct {
	Store       ObjectStore
	Config      *config.OssConfig
	ImageRepo   *dao.Image
	ProductRepo *dao.Product

	Now func() time.Time `wire:"-"`
}

var _ IImageService = (*ImageService)(nil)

type IImageService interface {
	// UploadImage 上传商品图片, 商品的第一张图片设为主图
	UploadImage(ctx context.Context, productID int64, header *multipart.FileHeader) (*types.UploadImageResp, error)
}

func invalidImage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidImage, fmt.Sprintf(format, args...))
}

func (s *ImageService) UploadImage(ctx context.Context, productID int64, header *multipart.FileHeader) (*types.UploadImageResp, error) {
	if header == nil {
		return nil, invalidImage("missing image")
	}
	// header.Size 不可信，但可做第一道拦截
	if header.Size <= 0 || header.Size > maxImageSize {
		return nil, invalidImage("image must be between 1 byte and 10MB")
	}

	if _, err := s.ProductRepo.FindById(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// 1) MIME 校验（读取前 512 bytes）
	head := make([]byte, 512)
	n, _ := io.ReadFull(f, head)
	contentType := http.DetectContentType(head[:n])
	if !allowedMime[contentType] {
		return nil, invalidImage("unsupported image type: %s", contentType)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	// 2) 读取尺寸 + 格式（不解码全图）
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, invalidImage("cannot decode image")
	}
	format = strings.ToLower(format)
	if !allowedFmt[format] {
		return nil, invalidImage("unsupported image format: %s", format)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	imageID := snowflake.GenID()
	ext := "." + format
	if format == "jpeg" {
		ext = ".jpg"
	}
	objectKey := fmt.Sprintf("products/%d/%s/%d%s", productID, now.UTC().Format("2006/01/02"), imageID, ext)

	if _, err := s.Store.PutObject(ctx, &oss.PutObjectRequest{
		Bucket:      oss.Ptr(s.Config.Bucket),
		Key:         oss.Ptr(objectKey),
		ContentType: oss.Ptr(contentType),
		Body:        io.LimitReader(f, maxImageSize+1),
	}); err != nil {
		return nil, err
	}

	count, err := s.ImageRepo.CountByProduct(ctx, productID)
	if err != nil {
		s.removeObject(ctx, objectKey)
		return nil, err
	}
	img := &models.ProductImage{
		ID:        imageID,
		ProductID: productID,
		ImageURL:  s.url(objectKey),
		OssKey:    objectKey,
		Width:     cfg.Width,
		Height:    cfg.Height,
		IsPrimary: count == 0,
	}
	if err := s.ImageRepo.CreateImage(ctx, img); err != nil {
		s.removeObject(ctx, objectKey)
		return nil, err
	}

	return &types.UploadImageResp{
		ImageID:   imageID,
		Url:       img.ImageURL,
		Width:     cfg.Width,
		Height:    cfg.Height,
		IsPrimary: img.IsPrimary,
	}, nil
}

func (s *ImageService) url(objectKey string) string {
	host := strings.TrimRight(s.Config.PublicHost, "/")
	if host == "" {
		host = fmt.Sprintf("https://%s.%s", s.Config.Bucket, s.Config.Endpoint)
	}
	return host + "/" + objectKey
}

// removeObject 入库失败时清理已上传的对象
func (s *ImageService) removeObject(ctx context.Context, objectKey string) {
	if _, err := s.Store.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(s.Config.Bucket),
		Key:    oss.Ptr(objectKey),
	}); err != nil {
		log.L.Warn("delete orphan object failed", zap.String("key", objectKey), zap.Error(err))
	}
}
