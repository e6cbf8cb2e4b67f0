package mongodb

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"real-estate-system/storefront/internal/core/domain"
)

const (
	ownersCollection     = "owners"
	propertiesCollection = "properties"
	imagesCollection     = "propertyImages"
	tracesCollection     = "propertyTraces"
)

type priceDocument struct {
	Amount   float64 `bson:"amount"`
	Currency string  `bson:"currency"`
}

type locationDocument struct {
	Address string `bson:"address"`
	City    string `bson:"city"`
	Country string `bson:"country,omitempty"`
}

type propertyDocument struct {
	ID           string           `bson:"_id"`
	Name         string           `bson:"name"`
	Description  string           `bson:"description,omitempty"`
	Price        priceDocument    `bson:"price"`
	Location     locationDocument `bson:"location"`
	PropertyType string           `bson:"propertyType"`
	Bedrooms     int              `bson:"bedrooms"`
	Bathrooms    int              `bson:"bathrooms"`
	Area         float64          `bson:"area"`
	AreaUnit     string           `bson:"areaUnit,omitempty"`
	Features     []string         `bson:"features,omitempty"`
	Images       []string         `bson:"images,omitempty"`
	Status       string           `bson:"status"`
	IDOwner      string           `bson:"idOwner,omitempty"`
	CodeInternal string           `bson:"codeInternal,omitempty"`
	Year         int              `bson:"year,omitempty"`
	CreatedAt    time.Time        `bson:"createdAt"`
	UpdatedAt    time.Time        `bson:"updatedAt"`
}

type ownerDocument struct {
	ID       string    `bson:"_id"`
	Name     string    `bson:"name"`
	Address  string    `bson:"address"`
	Photo    string    `bson:"photo,omitempty"`
	Birthday time.Time `bson:"birthday"`
}

type imageDocument struct {
	ID         string `bson:"_id"`
	IDProperty string `bson:"idProperty"`
	File       string `bson:"file"`
	Enabled    bool   `bson:"enabled"`
}

type traceDocument struct {
	ID         string    `bson:"_id"`
	IDProperty string    `bson:"idProperty"`
	DateSale   time.Time `bson:"dateSale"`
	Name       string    `bson:"name"`
	Value      float64   `bson:"value"`
	Tax        float64   `bson:"tax"`
}

func toPropertyDocument(p domain.Property) propertyDocument {
	return propertyDocument{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        priceDocument{Amount: p.Price.Amount, Currency: p.Price.Currency},
		Location:     locationDocument{Address: p.Location.Address, City: p.Location.City, Country: p.Location.Country},
		PropertyType: string(p.Type),
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Area:         p.Area,
		AreaUnit:     string(p.AreaUnit),
		Features:     p.Features,
		Images:       p.Images,
		Status:       string(p.Status),
		IDOwner:      p.OwnerID,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
		CreatedAt:    p.CreatedAt.UTC(),
		UpdatedAt:    p.UpdatedAt.UTC(),
	}
}

func (d propertyDocument) toDomain() domain.Property {
	propertyType, err := domain.ParsePropertyType(d.PropertyType)
	if err != nil {
		propertyType = domain.PropertyType(d.PropertyType)
	}
	return domain.Property{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Price:        domain.Price{Amount: d.Price.Amount, Currency: d.Price.Currency},
		Location:     domain.Location{Address: d.Location.Address, City: d.Location.City, Country: d.Location.Country},
		Type:         propertyType,
		Bedrooms:     d.Bedrooms,
		Bathrooms:    d.Bathrooms,
		Area:         d.Area,
		AreaUnit:     domain.AreaUnit(d.AreaUnit),
		Features:     d.Features,
		Images:       d.Images,
		Status:       domain.PropertyStatus(d.Status),
		OwnerID:      d.IDOwner,
		CodeInternal: d.CodeInternal,
		Year:         d.Year,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toOwnerDocument(o domain.Owner) ownerDocument {
	return ownerDocument{ID: o.ID, Name: o.Name, Address: o.Address, Photo: o.Photo, Birthday: o.Birthday.UTC()}
}

func (d ownerDocument) toDomain() domain.Owner {
	return domain.Owner{ID: d.ID, Name: d.Name, Address: d.Address, Photo: d.Photo, Birthday: d.Birthday}
}

func toImageDocument(img domain.PropertyImage) imageDocument {
	return imageDocument{ID: img.ID, IDProperty: img.PropertyID, File: img.File, Enabled: img.Enabled}
}

func (d imageDocument) toDomain() domain.PropertyImage {
	return domain.PropertyImage{ID: d.ID, PropertyID: d.IDProperty, File: d.File, Enabled: d.Enabled}
}

func toTraceDocument(t domain.PropertyTrace) traceDocument {
	return traceDocument{ID: t.ID, IDProperty: t.PropertyID, DateSale: t.DateSale.UTC(), Name: t.Name, Value: t.Value, Tax: t.Tax}
}

func (d traceDocument) toDomain() domain.PropertyTrace {
	return domain.PropertyTrace{ID: d.ID, PropertyID: d.IDProperty, DateSale: d.DateSale, Name: d.Name, Value: d.Value, Tax: d.Tax}
}

// propertyFilter строит запрос MongoDB с той же семантикой, что domain.PropertyFilters.Matches.
func propertyFilter(f domain.PropertyFilters) bson.M {
	filter := bson.M{}
	if search := searchRegex(f.Search); search != nil {
		filter["$or"] = bson.A{
			bson.M{"name": search},
			bson.M{"description": search},
			bson.M{"location.address": search},
			bson.M{"location.city": search},
		}
	}
	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if f.PriceAbove != nil {
		price["$gt"] = *f.PriceAbove
	}
	if len(price) > 0 {
		filter["price.amount"] = price
	}
	if f.PropertyType != "" {
		filter["propertyType"] = string(f.PropertyType)
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.OwnerID != "" {
		filter["idOwner"] = f.OwnerID
	}
	return filter
}

func ownerFilter(f domain.OwnerFilters) bson.M {
	filter := bson.M{}
	if search := searchRegex(f.Search); search != nil {
		filter["$or"] = bson.A{
			bson.M{"name": search},
			bson.M{"address": search},
		}
	}
	return filter
}

func searchRegex(search string) bson.M {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil
	}
	return bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
}

func traceSort(q domain.TraceQuery) bson.D {
	q = q.WithDefaults()
	direction := -1
	if q.Order == domain.SortAsc {
		direction = 1
	}
	return bson.D{{Key: string(q.SortBy), Value: direction}, {Key: "_id", Value: 1}}
}
