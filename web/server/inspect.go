package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	ShapeID      uint64                 `json:"shapeId"`
	Groups       []string               `json:"groups"` // Enclosing group names, innermost first
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	Color        string                 `json:"color"` // Shaded color of the pixel, #rrggbb
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains information about the first object hit by an inspection ray
type InspectResult struct {
	Hit   bool
	Comps geometry.Computations
	Color core.Color
}

// inspectPixel casts the camera ray through a pixel and shades the first hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	ray := sceneObj.Camera.RayForPixel(pixelX, pixelY)
	xs := sceneObj.World.Intersect(ray)
	hit := xs.Hit()
	if !hit.Ok() {
		return InspectResult{Hit: false}
	}

	comps := geometry.PrepareComputations(hit, ray, xs)
	return InspectResult{
		Hit:   true,
		Comps: comps,
		Color: sceneObj.World.ShadeHit(comps, sceneObj.Config.MaxDepth),
	}
}

// extractMaterialInfo classifies a material and lists its Phong parameters
func (s *Server) extractMaterialInfo(m *material.Material, obj *geometry.Shape, point core.Tuple) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"ambient":         m.Ambient,
		"diffuse":         m.Diffuse,
		"specular":        m.Specular,
		"shininess":       m.Shininess,
		"reflective":      m.Reflective,
		"transparency":    m.Transparency,
		"refractiveIndex": m.RefractiveIndex,
		"pattern":         patternName(m.Pattern),
		"surfaceColor":    hexColor(m.ColorAt(obj, point)),
	}

	switch {
	case m.IsTransparent() && m.IsReflective():
		return "glass", properties
	case m.IsTransparent():
		return "transparent", properties
	case m.IsReflective():
		return "reflective", properties
	default:
		return "phong", properties
	}
}

// extractGeometryInfo lists the parameters of a primitive
func (s *Server) extractGeometryInfo(shape *geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch shape.Kind() {
	case geometry.KindCylinder, geometry.KindCone:
		properties["minimum"] = finiteOrNil(shape.Minimum())
		properties["maximum"] = finiteOrNil(shape.Maximum())
		properties["closed"] = shape.Closed()

	case geometry.KindTriangle:
		properties["p1"] = tupleArray(shape.P1())
		properties["p2"] = tupleArray(shape.P2())
		properties["p3"] = tupleArray(shape.P3())
		properties["faceNormal"] = tupleArray(shape.FaceNormal())
	}

	if b := shape.ParentSpaceBounds(); isFiniteBox(b) {
		properties["boundingBox"] = map[string]interface{}{
			"min": tupleArray(b.Min),
			"max": tupleArray(b.Max),
		}
	}

	return shape.Kind().String(), properties
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}

	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(inspectReq, nil)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if pixelX < 0 || pixelX >= sceneObj.Config.Width || pixelY < 0 || pixelY >= sceneObj.Config.Height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InspectResponse{Hit: false, Color: hexColor(sceneObj.World.Background())})
		return
	}

	comps := result.Comps
	materialType, materialProps := s.extractMaterialInfo(comps.Object.Material(), comps.Object, comps.Point)
	geometryType, geometryProps := s.extractGeometryInfo(comps.Object)

	var groups []string
	for p := comps.Object.Parent(); p != nil; p = p.Parent() {
		groups = append(groups, p.Name())
	}

	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		ShapeID:      comps.Object.ID(),
		Groups:       groups,
		Point:        tupleArray(comps.Point),
		Normal:       tupleArray(comps.Normal),
		Distance:     comps.T,
		Inside:       comps.Inside,
		Color:        hexColor(result.Color),
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
			"n1":       comps.N1,
			"n2":       comps.N2,
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func tupleArray(t core.Tuple) [3]float64 {
	return [3]float64{t.X, t.Y, t.Z}
}

// hexColor formats a color as #rrggbb after clamping
func hexColor(c core.Color) string {
	rgba := canvas.ToRGBA(c)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// patternName returns the lower-cased type name of a pattern, e.g. "checker"
func patternName(p material.Pattern) string {
	if p == nil {
		return "none"
	}
	name := fmt.Sprintf("%T", p)
	return strings.ToLower(name[strings.LastIndex(name, ".")+1:])
}

// finiteOrNil maps infinite extents to JSON null
func finiteOrNil(v float64) interface{} {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return v
}

func isFiniteBox(b core.AABB) bool {
	if !b.IsValid() {
		return false
	}
	for _, v := range []float64{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z} {
		if math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
