package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scene groups
const (
	BuiltinGroup = "Built-in Scenes"
	ModelGroup   = "Models"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin", "obj" or "ply"
	FilePath    string `json:"filePath"`    // Path to the model file (model types only)
	Variant     string `json:"variant"`     // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// modelDirs are the locations searched for model files, relative to the working
// directory of the CLI or the web server
var modelDirs = []string{"models", "../models"}

// findModelsDir returns the first existing models directory, or ""
func findModelsDir() string {
	for _, dir := range modelDirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}

// ListModelScenes scans the models directory for .obj and .ply files
func ListModelScenes() ([]SceneInfo, error) {
	dir := findModelsDir()
	if dir == "" {
		return []SceneInfo{}, nil
	}
	return listModelScenesIn(dir)
}

func listModelScenesIn(dir string) ([]SceneInfo, error) {
	var files []string
	for _, pattern := range []string{"*.obj", "*.ply"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan models directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseModelMetadata(filePath)
		if err != nil {
			// Keep the fallback metadata; the model may still load
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseModelMetadata extracts metadata from a model file's header comments:
// "# Key: value" lines at the top of an OBJ file, or "comment Key: value" lines
// in a PLY header. Recognized keys are Scene, Variant, Description and Group.
func ParseModelMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	ext := strings.ToLower(filepath.Ext(filename))
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))
	modelType := strings.TrimPrefix(ext, ".")

	sceneInfo := SceneInfo{
		ID:          fmt.Sprintf("%s:%s", modelType, nameWithoutExt),
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       ModelGroup,
		Type:        modelType,
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		// Unreadable files keep their fallback values
		return sceneInfo, nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		var content string
		switch {
		case ext == ".ply" && line == "end_header":
			return finishSceneInfo(sceneInfo), nil
		case ext == ".ply" && strings.HasPrefix(line, "comment "):
			content = strings.TrimSpace(strings.TrimPrefix(line, "comment "))
		case ext == ".ply":
			continue
		case line == "":
			continue
		case strings.HasPrefix(line, "#"):
			content = strings.TrimSpace(strings.TrimPrefix(line, "#"))
		default:
			// Metadata ends at the first OBJ statement
			return finishSceneInfo(sceneInfo), nil
		}

		key, value, ok := strings.Cut(content, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "Scene":
			sceneInfo.Name = value
		case "Variant":
			sceneInfo.Variant = value
		case "Description":
			sceneInfo.Description = value
		case "Group":
			sceneInfo.Group = value
		}
	}

	return finishSceneInfo(sceneInfo), scanner.Err()
}

// finishSceneInfo sets the display name from the parsed metadata
func finishSceneInfo(sceneInfo SceneInfo) SceneInfo {
	if sceneInfo.Variant != "" {
		sceneInfo.DisplayName = fmt.Sprintf("%s - %s", sceneInfo.Name, sceneInfo.Variant)
	} else {
		sceneInfo.DisplayName = sceneInfo.Name
	}
	return sceneInfo
}

// ListAllScenes returns both built-in and model scenes, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	var response ScenesResponse

	modelScenes, err := ListModelScenes()
	if err != nil {
		return response, fmt.Errorf("failed to list model scenes: %w", err)
	}

	allScenes := append(BuiltinScenes(), modelScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != BuiltinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtInGroup, exists := groupMap[BuiltinGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   BuiltinGroup,
			Scenes: builtInGroup,
		})
	}

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "utah-teapot" -> "Utah Teapot"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
