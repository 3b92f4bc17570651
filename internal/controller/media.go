// FILE: internal/controller/media.go
package controller

import (
	"io"
	"strings"

	"github.com/Tarunsai01/ARIA/internal/service"
	"github.com/Tarunsai01/ARIA/pkg/provider"
	"github.com/Tarunsai01/ARIA/pkg/translation/knowledge"

	"github.com/gofiber/fiber/v2"
)

// parseSignMedia normalizes the two sign-media submission forms to raw
// bytes. An uploaded "file" part wins; otherwise base64 video_data then
// image_data, with data-URL prefixes stripped. A request with no media
// returns a zero input and the service decides whether that is an error.
func parseSignMedia(ctx *fiber.Ctx, videoData, imageData string) (service.MediaInput, error) {
	if file, err := ctx.FormFile("file"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return service.MediaInput{}, err
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return service.MediaInput{}, err
		}

		kind := provider.CapabilityVideo
		if strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
			kind = provider.CapabilityImage
		}
		return service.MediaInput{
			Kind:     kind,
			Data:     data,
			MimeType: file.Header.Get("Content-Type"),
			FileName: file.Filename,
		}, nil
	}

	if videoData != "" {
		return service.MediaInput{
			Kind: provider.CapabilityVideo,
			Data: knowledge.DecodeMedia(videoData),
		}, nil
	}
	if imageData != "" {
		return service.MediaInput{
			Kind: provider.CapabilityImage,
			Data: knowledge.DecodeMedia(imageData),
		}, nil
	}
	return service.MediaInput{}, nil
}
