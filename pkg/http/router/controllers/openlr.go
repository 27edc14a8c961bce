package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/navigatorx-openlr/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/codec"
	geojson "github.com/paulmach/go.geojson"
	"go.uber.org/zap"
)

// limit on request bodies (1 MiB).
const maxBodyBytes = 1 << 20

type openlrAPI struct {
	openlrService OpenLRService
	log           *zap.Logger
	validate      *validator.Validate
	trans         ut.Translator
}

func New(openlrService OpenLRService, log *zap.Logger) *openlrAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &openlrAPI{
		openlrService: openlrService,
		log:           log,
		validate:      validate,
		trans:         trans,
	}
}

func (api *openlrAPI) Routes(group *helper.RouteGroup) {
	group.POST("/decode", api.decode)
	group.POST("/encode", api.encode)
}

// decode godoc
//
//	@Summary		resolve a location reference on the road network
//	@Tags			openlr
//	@Accept			json
//	@Produce		json
//	@Router			/decode [post]
func (api *openlrAPI) decode(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request decodeRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	location, err := request.location()
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	decoded, err := api.openlrService.Decode(r.Context(), location)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	var features *geojson.FeatureCollection
	if request.Geojson {
		features = api.openlrService.Features(decoded.Edges)
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewDecodeResponse(decoded, features)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// encode godoc
//
//	@Summary		build a map-independent location reference from road network edges
//	@Tags			openlr
//	@Accept			json
//	@Produce		json
//	@Router			/encode [post]
func (api *openlrAPI) encode(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request encodeRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	numEdges := api.openlrService.NumberOfEdges()
	for _, e := range request.Edges {
		if int(e) >= numEdges {
			api.BadRequestResponse(w, r, fmt.Errorf("edge %d does not exist", e))
			return
		}
	}

	encoded, err := api.openlrService.Encode(request.toReferencedLocation())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	doc, err := codec.NewDocument(encoded)
	if err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": doc}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *openlrAPI) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (api *openlrAPI) validateRequest(request interface{}) error {
	if err := api.validate.Struct(request); err != nil {
		vv := translateError(err, api.trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return fmt.Errorf("validation error: %v", vvString)
	}
	return nil
}
