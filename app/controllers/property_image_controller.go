package controllers

import (
	"fmt"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sujit-baniya/flash"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
	"github.com/Impagliazzo/Proyecto-LaColmena/app/repository"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/photos"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/photostore"
)

// photoStore is initialized at startup; nil means uploads are disabled.
var photoStore *photostore.Client

// SetupPhotoStore wires the S3 photo store when enabled by configuration.
func SetupPhotoStore() {
	cfg, err := photostore.LoadConfig()
	if err != nil {
		log.Printf("photo store config invalid: %v", err)
		return
	}
	if !cfg.IsEnabled() {
		log.Print("photo store disabled, listing photo uploads unavailable")
		return
	}
	client, err := photostore.NewClient(cfg)
	if err != nil {
		log.Printf("photo store init failed: %v", err)
		return
	}
	photoStore = client
}

// HandlePropertyPhotoUpload accepts one photo for a listing, stores the
// original plus a thumbnail, and prefills missing GPS coordinates from EXIF.
func HandlePropertyPhotoUpload(c *fiber.Ctx) error {
	property, err := ownListingFromParams(c)
	if err != nil {
		return err
	}

	if photoStore == nil {
		fm := fiber.Map{"type": "error", "message": "Photo uploads are currently unavailable"}
		return flash.WithError(c, fm).Redirect("/properties/" + property.UUID + "/edit")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "No photo in request"}
		return flash.WithError(c, fm).Redirect("/properties/" + property.UUID + "/edit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, photos.MaxPhotoBytes+1))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not read upload")
	}

	processed, err := photos.Process(fileHeader.Filename, data)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": err.Error()}
		return flash.WithError(c, fm).Redirect("/properties/" + property.UUID + "/edit")
	}

	fileName := uuid.New().String() + ".jpg"
	cfg, _ := photostore.LoadConfig()
	origKey := cfg.GetObjectKey(property.UUID, fileName)
	thumbKey := cfg.GetThumbObjectKey(property.UUID, fileName)

	if _, err := photoStore.Upload(origKey, processed.Original); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("upload failed: %v", err))
	}
	if _, err := photoStore.Upload(thumbKey, processed.Thumbnail); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("thumbnail upload failed: %v", err))
	}

	repos := repository.GetGlobalRepositories()

	existing, _ := repos.Property.GetImages(property.ID)
	image := &models.PropertyImage{
		PropertyID:     property.ID,
		ObjectKey:      origKey,
		ThumbObjectKey: thumbKey,
		FileName:       fileHeader.Filename,
		FileSize:       int64(len(processed.Original)),
		Width:          processed.Width,
		Height:         processed.Height,
		SortOrder:      len(existing),
		IsMain:         len(existing) == 0,
	}
	if err := repos.Property.AddImage(image); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not save photo record")
	}

	// Prefill listing coordinates from the photo when the owner left them out.
	if property.Latitude == nil && processed.Latitude != nil {
		property.Latitude = processed.Latitude
		property.Longitude = processed.Longitude
		if err := repos.Property.Update(property); err != nil {
			log.Printf("GPS prefill failed for listing %d: %v", property.ID, err)
		}
	}

	fm := fiber.Map{"type": "success", "message": "Photo uploaded"}
	return flash.WithSuccess(c, fm).Redirect("/properties/" + property.UUID + "/edit")
}

// HandlePropertyPhotoDelete removes a photo from a listing and the store.
func HandlePropertyPhotoDelete(c *fiber.Ctx) error {
	property, err := ownListingFromParams(c)
	if err != nil {
		return err
	}

	imageID, err := c.ParamsInt("imageID")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid photo id")
	}

	repos := repository.GetGlobalRepositories()
	images, err := repos.Property.GetImages(property.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "photo lookup failed")
	}

	for _, image := range images {
		if image.ID != uint(imageID) {
			continue
		}
		if photoStore != nil {
			if err := photoStore.DeleteFile(image.ObjectKey); err != nil {
				log.Printf("photo delete failed for %s: %v", image.ObjectKey, err)
			}
			if image.ThumbObjectKey != "" {
				if err := photoStore.DeleteFile(image.ThumbObjectKey); err != nil {
					log.Printf("thumbnail delete failed for %s: %v", image.ThumbObjectKey, err)
				}
			}
		}
		if err := repos.Property.DeleteImage(image.ID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete photo record")
		}
		fm := fiber.Map{"type": "success", "message": "Photo removed"}
		return flash.WithSuccess(c, fm).Redirect("/properties/" + property.UUID + "/edit")
	}

	return fiber.NewError(fiber.StatusNotFound, "photo not found")
}

// HandlePropertyPhotoSetMain marks one photo as the listing's cover.
func HandlePropertyPhotoSetMain(c *fiber.Ctx) error {
	property, err := ownListingFromParams(c)
	if err != nil {
		return err
	}

	imageID, err := c.ParamsInt("imageID")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid photo id")
	}

	if err := repository.GetGlobalRepositories().Property.SetMainImage(property.ID, uint(imageID)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not update cover photo")
	}

	fm := fiber.Map{"type": "success", "message": "Cover photo updated"}
	return flash.WithSuccess(c, fm).Redirect("/properties/" + property.UUID + "/edit")
}
