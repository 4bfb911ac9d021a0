package service

import (
	"context"
	"errors"
	"testing"

	"kptshop/internal/domain"
	"kptshop/internal/domain/models"
	"kptshop/internal/domain/services"
	"kptshop/internal/repository/memory"
)

func TestCreateFolder_Paths(t *testing.T) {
	ctx := context.Background()
	repos := memory.New()
	svc := NewFolderService(repos.Folders, repos.Images, testLogger())

	summer, err := svc.CreateFolder(ctx, &services.CreateFolderRequest{Name: "  Summer "})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	if summer.Path != "Summer" || summer.ParentID != nil {
		t.Errorf("root folder = %+v", summer)
	}

	y2024, err := svc.CreateFolder(ctx, &services.CreateFolderRequest{Name: "2024", ParentID: &summer.ID})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if y2024.Path != "Summer/2024" {
		t.Errorf("child path = %q, want Summer/2024", y2024.Path)
	}
	if y2024.ParentID == nil || *y2024.ParentID != summer.ID {
		t.Errorf("child parent = %v", y2024.ParentID)
	}

	june, err := svc.CreateFolder(ctx, &services.CreateFolderRequest{Name: "June", ParentID: &y2024.ID})
	if err != nil {
		t.Fatalf("create grandchild: %v", err)
	}
	if june.Path != "Summer/2024/June" {
		t.Errorf("grandchild path = %q", june.Path)
	}
}

func TestCreateFolder_UnknownParentFallsBackToRoot(t *testing.T) {
	ctx := context.Background()
	repos := memory.New()
	svc := NewFolderService(repos.Folders, repos.Images, testLogger())

	folder, err := svc.CreateFolder(ctx, &services.CreateFolderRequest{Name: "Orphan", ParentID: ptr("no-such-folder")})
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if folder.ParentID != nil {
		t.Errorf("ParentID = %v, want nil", *folder.ParentID)
	}
	if folder.Path != "Orphan" {
		t.Errorf("Path = %q, want Orphan", folder.Path)
	}
}

func TestCreateFolder_EmptyParentIsRoot(t *testing.T) {
	repos := memory.New()
	svc := NewFolderService(repos.Folders, repos.Images, testLogger())

	folder, err := svc.CreateFolder(context.Background(), &services.CreateFolderRequest{Name: "Top", ParentID: ptr("  ")})
	if err != nil {
		t.Fatal(err)
	}
	if !folder.IsRoot() {
		t.Errorf("expected root folder, got parent %v", *folder.ParentID)
	}
}

func TestCreateFolder_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   services.CreateFolderRequest
		field string
	}{
		{name: "blank name", req: services.CreateFolderRequest{Name: "   "}, field: "name"},
		{name: "slash in name", req: services.CreateFolderRequest{Name: "a/b"}, field: "name"},
		{name: "negative order", req: services.CreateFolderRequest{Name: "a", Order: -1}, field: "order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := memory.New()
			svc := NewFolderService(repos.Folders, repos.Images, testLogger())

			_, err := svc.CreateFolder(context.Background(), &tt.req)
			requireFieldError(t, err, tt.field)
		})
	}
}

func TestListFolders(t *testing.T) {
	ctx := context.Background()
	repos := memory.New()
	svc := NewFolderService(repos.Folders, repos.Images, testLogger())

	root, _ := svc.CreateFolder(ctx, &services.CreateFolderRequest{Name: "Winter"})
	if _, err := svc.CreateFolder(ctx, &services.CreateFolderRequest{Name: "Autumn"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateFolder(ctx, &services.CreateFolderRequest{Name: "2023", ParentID: &root.ID}); err != nil {
		t.Fatal(err)
	}

	roots, err := svc.ListFolders(ctx, ptr(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 2 || roots[0].Name != "Autumn" || roots[1].Name != "Winter" {
		t.Errorf("roots = %+v", roots)
	}

	children, err := svc.ListFolders(ctx, &root.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 1 || children[0].Path != "Winter/2023" {
		t.Errorf("children = %+v", children)
	}

	none, err := svc.ListFolders(ctx, ptr("unknown"))
	if err != nil || len(none) != 0 {
		t.Errorf("unknown parent: %v, %v", none, err)
	}
}

func TestDeleteFolder(t *testing.T) {
	ctx := context.Background()
	repos := memory.New()
	svc := NewFolderService(repos.Folders, repos.Images, testLogger())

	parent, _ := svc.CreateFolder(ctx, &services.CreateFolderRequest{Name: "Summer"})
	child, _ := svc.CreateFolder(ctx, &services.CreateFolderRequest{Name: "2024", ParentID: &parent.ID})

	if err := svc.DeleteFolder(ctx, parent.ID); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("delete folder with subfolders: expected conflict, got %v", err)
	}

	img := &models.Image{Name: "beach.jpg", URL: "u", PublicID: "p", FolderID: &child.ID}
	if err := repos.Images.Create(ctx, img); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteFolder(ctx, child.ID); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("delete folder with images: expected conflict, got %v", err)
	}

	if err := repos.Images.Delete(ctx, img.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteFolder(ctx, child.ID); err != nil {
		t.Errorf("delete empty folder: %v", err)
	}
	if err := svc.DeleteFolder(ctx, parent.ID); err != nil {
		t.Errorf("delete now-empty parent: %v", err)
	}
	if _, err := svc.GetFolder(ctx, parent.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("deleted folder still readable: %v", err)
	}
	if err := svc.DeleteFolder(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("delete missing: expected ErrNotFound, got %v", err)
	}
}
