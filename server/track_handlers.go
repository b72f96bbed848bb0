package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"peako/core/soundcloud"
	"peako/logger"
	"peako/model"

	"github.com/gorilla/mux"
)

// trackRequest 创建/更新曲目的请求体
type trackRequest struct {
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	Featuring     string `json:"featuring"`
	ReleaseDate   string `json:"releaseDate"`
	ReleaseType   string `json:"releaseType"`
	Genre         string `json:"genre"`
	Duration      string `json:"duration"`
	CoverArt      string `json:"coverArt"`
	AudioFile     string `json:"audioFile"`
	SoundcloudURL string `json:"soundcloudUrl"`
	SoundcloudID  string `json:"soundcloudId"`
	SpotifyURL    string `json:"spotifyUrl"`
	AppleMusicURL string `json:"appleMusicUrl"`
	YoutubeURL    string `json:"youtubeUrl"`
	BeatportURL   string `json:"beatportUrl"`
	DeezerURL     string `json:"deezerUrl"`
	Featured      *bool  `json:"featured"`
	Visible       *bool  `json:"visible"`
}

// applyDefaults 填充站点默认值并解析发行日期
func (req *trackRequest) toTrack() (*model.Track, string) {
	if req.Title == "" || req.ReleaseDate == "" {
		return nil, "Title and release date are required"
	}

	releaseType := req.ReleaseType
	if releaseType == "" {
		releaseType = string(model.ReleaseSingle)
	}
	if !model.ValidReleaseType(releaseType) {
		return nil, "Invalid release type"
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		if releaseDate, err = time.Parse(time.RFC3339, req.ReleaseDate); err != nil {
			return nil, "Invalid release date format"
		}
	}

	artist := req.Artist
	if artist == "" {
		artist = soundcloud.DefaultArtist
	}
	genre := req.Genre
	if genre == "" {
		genre = soundcloud.DefaultGenre
	}

	featured := false
	if req.Featured != nil {
		featured = *req.Featured
	}
	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	return &model.Track{
		Title:         req.Title,
		Artist:        artist,
		Featuring:     req.Featuring,
		ReleaseDate:   releaseDate,
		ReleaseType:   model.ReleaseType(releaseType),
		Genre:         genre,
		Duration:      req.Duration,
		CoverArt:      req.CoverArt,
		AudioFile:     req.AudioFile,
		SoundcloudURL: req.SoundcloudURL,
		SoundcloudID:  req.SoundcloudID,
		SpotifyURL:    req.SpotifyURL,
		AppleMusicURL: req.AppleMusicURL,
		YoutubeURL:    req.YoutubeURL,
		BeatportURL:   req.BeatportURL,
		DeezerURL:     req.DeezerURL,
		Featured:      featured,
		Visible:       visible,
	}, ""
}

// GetTracksHandler 返回曲目列表。公开访问只含可见曲目，
// 管理端带 ?all=true 返回全部。
func (h *APIHandler) GetTracksHandler(w http.ResponseWriter, r *http.Request) {
	// 隐藏曲目只对管理端可见
	includeHidden := r.URL.Query().Get("all") == "true" && requestAuthenticated(r)

	tracks, err := h.trackRepo.GetAllTracks(includeHidden)
	if err != nil {
		logger.Error("查询曲目列表失败", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch tracks")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"tracks":  tracks,
	})
}

// CreateTrackHandler 创建一条曲目记录
func (h *APIHandler) CreateTrackHandler(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	track, errMsg := req.toTrack()
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}

	// 新曲目追加到列表末尾
	order, err := h.trackRepo.NextDisplayOrder()
	if err != nil {
		logger.Error("计算曲目顺序失败", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to create track")
		return
	}
	track.Order = order

	id, err := h.trackRepo.CreateTrack(track)
	if err != nil {
		if isDuplicateError(err) {
			respondError(w, http.StatusBadRequest, "A track with this SoundCloud URL or ID already exists")
			return
		}
		logger.Error("创建曲目失败", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to create track")
		return
	}
	track.ID = id

	logger.Info("曲目创建成功",
		logger.Int64("trackId", id),
		logger.String("title", track.Title))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"track":   track,
	})
}

// UpdateTrackHandler 更新一条曲目记录
func (h *APIHandler) UpdateTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid track ID")
		return
	}

	existing, err := h.trackRepo.GetTrackByID(id)
	if err != nil {
		logger.Error("查询曲目失败", logger.Int64("trackId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch track")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Track not found")
		return
	}

	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	track, errMsg := req.toTrack()
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}
	track.ID = id
	track.Order = existing.Order

	if err := h.trackRepo.UpdateTrack(track); err != nil {
		if isDuplicateError(err) {
			respondError(w, http.StatusBadRequest, "A track with this SoundCloud URL or ID already exists")
			return
		}
		logger.Error("更新曲目失败", logger.Int64("trackId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to update track")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"track":   track,
	})
}

// DeleteTrackHandler 删除一条曲目记录。封面和音频文件属于媒体库，
// 由媒体删除接口单独清理，这里不动存储。
func (h *APIHandler) DeleteTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid track ID")
		return
	}

	existing, err := h.trackRepo.GetTrackByID(id)
	if err != nil {
		logger.Error("查询曲目失败", logger.Int64("trackId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch track")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Track not found")
		return
	}

	if err := h.trackRepo.DeleteTrack(id); err != nil {
		logger.Error("删除曲目失败", logger.Int64("trackId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to delete track")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// isDuplicateError 判断是否为唯一约束冲突
func isDuplicateError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate entry")
}
