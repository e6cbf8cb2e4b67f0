package internal

import (
	"io"

	"real-estate-system/storefront/internal/adapters/api_client"
	"real-estate-system/storefront/internal/adapters/httpclient"
	logger_adapter "real-estate-system/storefront/internal/adapters/logger"
	"real-estate-system/storefront/internal/adapters/repository"
	"real-estate-system/storefront/internal/configs"
	"real-estate-system/storefront/internal/core/port"
	"real-estate-system/storefront/internal/core/port/usecases_port"
	"real-estate-system/storefront/internal/core/store"
	"real-estate-system/storefront/internal/core/usecase"
)

// Storefront — собранная клиентская часть: стор и сценарии поверх API.
type Storefront struct {
	Store *store.Store

	LoadProperties    usecases_port.LoadPropertiesUseCasePort
	GetPropertyDetail usecases_port.GetPropertyDetailUseCasePort
	CreateProperty    usecases_port.CreatePropertyUseCasePort
	UpdateProperty    usecases_port.UpdatePropertyUseCasePort
	DeleteProperty    usecases_port.DeletePropertyUseCasePort
	Owners            usecases_port.ManageOwnersUseCasePort
	Media             usecases_port.PropertyMediaUseCasePort

	Logger  port.LoggerPort
	logging *logger_adapter.Setup
}

// NewStorefront собирает HTTP-клиент, API-клиенты, репозитории, стор и сценарии.
// Логи пишутся в logWriter.
func NewStorefront(cfg *configs.ClientConfig, logWriter io.Writer) (*Storefront, error) {
	logging, err := logger_adapter.NewFromConfig(cfg.AppName, cfg.StdoutLogger, cfg.FluentBit, logWriter)
	if err != nil {
		return nil, err
	}

	httpCfg := httpclient.DefaultConfig(cfg.APIURL)
	httpCfg.Timeout = cfg.Timeout
	httpCfg.Retries = cfg.Retries
	httpCfg.RetryDelay = cfg.RetryDelay
	httpClient := httpclient.NewClient(httpCfg, nil)

	propertyRepo := repository.NewPropertyRepository(api_client.NewPropertyClient(httpClient))
	ownerRepo := repository.NewOwnerRepository(api_client.NewOwnerClient(httpClient))
	imageRepo := repository.NewPropertyImageRepository(api_client.NewPropertyImageClient(httpClient))
	traceRepo := repository.NewPropertyTraceRepository(api_client.NewPropertyTraceClient(httpClient))

	s := store.New(store.Options{CacheTTL: cfg.CacheTTL})

	logger := logging.Logger.WithFields(port.Fields{"component": "storefront"})
	logger.Debug("Storefront initialized", port.Fields{"api_url": cfg.APIURL})

	return &Storefront{
		Store:             s,
		LoadProperties:    usecase.NewLoadPropertiesUseCase(propertyRepo, s),
		GetPropertyDetail: usecase.NewGetPropertyDetailUseCase(propertyRepo, s),
		CreateProperty:    usecase.NewCreatePropertyUseCase(propertyRepo, s),
		UpdateProperty:    usecase.NewUpdatePropertyUseCase(propertyRepo, s),
		DeleteProperty:    usecase.NewDeletePropertyUseCase(propertyRepo, s),
		Owners:            usecase.NewManageOwnersUseCase(ownerRepo),
		Media:             usecase.NewPropertyMediaUseCase(imageRepo, traceRepo),
		Logger:            logging.Logger,
		logging:           logging,
	}, nil
}

// Close закрывает клиент Fluent Bit, если он был поднят.
func (s *Storefront) Close() error {
	return s.logging.Close()
}
