package api_client

import (
	"context"
	"fmt"
	"net/url"

	"real-estate-system/storefront/internal/adapters/httpclient"
	"real-estate-system/storefront/internal/core/domain"
)

// PropertyImageClient — клиент изображений, вложенных в /properties/{id}/images.
type PropertyImageClient struct {
	http Requester
}

func NewPropertyImageClient(http Requester) *PropertyImageClient {
	return &PropertyImageClient{http: http}
}

func imagesPath(propertyID string) string {
	return propertyPath(propertyID) + "/images"
}

func imagePath(propertyID, imageID string) string {
	return imagesPath(propertyID) + "/" + url.PathEscape(imageID)
}

func (c *PropertyImageClient) FetchList(ctx context.Context, propertyID string, filters domain.ImageFilters) ([]domain.PropertyImage, error) {
	rc := &httpclient.RequestConfig{}
	if filters.EnabledOnly {
		rc.Query = url.Values{"enabledOnly": {"true"}}
	}

	var resp imageListResponse
	if err := c.http.Get(ctx, imagesPath(propertyID), rc, &resp); err != nil {
		return nil, fmt.Errorf("fetch images of property %s: %w", propertyID, err)
	}

	images := make([]domain.PropertyImage, 0, len(resp.Images))
	for _, dto := range resp.Images {
		images = append(images, dto.toDomain())
	}
	return images, nil
}

func (c *PropertyImageClient) FetchByID(ctx context.Context, propertyID, imageID string) (*domain.PropertyImage, error) {
	var dto imageDTO
	if err := c.http.Get(ctx, imagePath(propertyID, imageID), nil, &dto); err != nil {
		return nil, fmt.Errorf("fetch image %s: %w", imageID, err)
	}
	img := dto.toDomain()
	return &img, nil
}

func (c *PropertyImageClient) Create(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error) {
	var dto imageDTO
	if err := c.http.Post(ctx, imagesPath(image.PropertyID), fromDomainImage(image), nil, &dto); err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	img := dto.toDomain()
	return &img, nil
}

func (c *PropertyImageClient) Update(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error) {
	var dto imageDTO
	if err := c.http.Put(ctx, imagePath(image.PropertyID, image.ID), fromDomainImage(image), nil, &dto); err != nil {
		return nil, fmt.Errorf("update image %s: %w", image.ID, err)
	}
	img := dto.toDomain()
	return &img, nil
}

func (c *PropertyImageClient) Delete(ctx context.Context, propertyID, imageID string) error {
	if err := c.http.Delete(ctx, imagePath(propertyID, imageID), nil, nil); err != nil {
		return fmt.Errorf("delete image %s: %w", imageID, err)
	}
	return nil
}
