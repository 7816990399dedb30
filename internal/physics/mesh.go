package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	bvhLeafSize = 4
	bvhMaxDepth = 20
)

// Triangle represents a single triangle with precomputed normal
type Triangle struct {
	V0, V1, V2 rl.Vector3
	Normal     rl.Vector3
}

// NewTriangle computes the normal from the winding (V0, V1, V2).
// A degenerate triangle gets a zero normal.
func NewTriangle(v0, v1, v2 rl.Vector3) Triangle {
	edge1 := rl.Vector3Subtract(v1, v0)
	edge2 := rl.Vector3Subtract(v2, v0)
	normal := rl.Vector3CrossProduct(edge1, edge2)
	if lengthSqr(normal) < normalEpsilon {
		normal = rl.Vector3{}
	} else {
		normal = rl.Vector3Normalize(normal)
	}
	return Triangle{V0: v0, V1: v1, V2: v2, Normal: normal}
}

func (t *Triangle) centroid() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(t.V0, t.V1), t.V2), 1.0/3.0)
}

// bvhNode is a node in the bounding volume hierarchy
type bvhNode struct {
	bounds    AABB
	left      *bvhNode
	right     *bvhNode
	triangles []int // indices into the triangle array (only for leaf nodes)
}

// TriangleMesh is immutable triangulated geometry in world space.
type TriangleMesh struct {
	Name      string
	triangles []Triangle
	root      *bvhNode
}

// NewTriangleMesh copies the triangles and builds the BVH once.
func NewTriangleMesh(name string, triangles []Triangle) *TriangleMesh {
	m := &TriangleMesh{
		Name:      name,
		triangles: append([]Triangle(nil), triangles...),
	}
	m.buildBVH()
	return m
}

// buildBVH constructs a bounding volume hierarchy for fast queries
func (m *TriangleMesh) buildBVH() {
	if len(m.triangles) == 0 {
		return
	}

	indices := make([]int, len(m.triangles))
	for i := range indices {
		indices[i] = i
	}

	m.root = m.buildBVHNode(indices, 0)
}

func (m *TriangleMesh) buildBVHNode(indices []int, depth int) *bvhNode {
	node := &bvhNode{bounds: m.computeBounds(indices)}

	if len(indices) <= bvhLeafSize || depth > bvhMaxDepth {
		node.triangles = indices
		return node
	}

	// Find longest axis
	size := node.bounds.Size()
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > getAxisValue(size, axis) {
		axis = 2
	}

	mid := m.partitionTriangles(indices, axis)
	if mid == 0 || mid == len(indices) {
		// Couldn't split, make leaf
		node.triangles = indices
		return node
	}

	node.left = m.buildBVHNode(indices[:mid], depth+1)
	node.right = m.buildBVHNode(indices[mid:], depth+1)

	return node
}

func (m *TriangleMesh) computeBounds(indices []int) AABB {
	bounds := emptyAABB()
	for _, idx := range indices {
		tri := &m.triangles[idx]
		bounds = bounds.Extend(tri.V0).Extend(tri.V1).Extend(tri.V2)
	}
	return bounds
}

// partitionTriangles splits around the mean centroid on the given axis
func (m *TriangleMesh) partitionTriangles(indices []int, axis int) int {
	center := float32(0)
	for _, idx := range indices {
		c := m.triangles[idx].centroid()
		center += getAxisValue(c, axis)
	}
	center /= float32(len(indices))

	left := 0
	right := len(indices) - 1
	for left <= right {
		c := m.triangles[indices[left]].centroid()
		if getAxisValue(c, axis) < center {
			left++
		} else {
			indices[left], indices[right] = indices[right], indices[left]
			right--
		}
	}
	return left
}

// Raycast walks the BVH nearest-first and returns the closest triangle hit.
func (m *TriangleMesh) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	if m.root == nil {
		return RaycastHit{}, false
	}
	direction = rl.Vector3Normalize(direction)
	if lengthSqr(direction) == 0 {
		return RaycastHit{}, false
	}

	best := maxDistance
	bestTri := -1
	m.raycastNode(m.root, origin, direction, &best, &bestTri)
	if bestTri < 0 {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, best))
	return RaycastHit{Point: point, Normal: m.triangles[bestTri].Normal, Distance: best}, true
}

func (m *TriangleMesh) raycastNode(node *bvhNode, origin, direction rl.Vector3, best *float32, bestTri *int) {
	if node == nil {
		return
	}
	if _, _, ok := node.bounds.intersectRay(origin, direction, *best); !ok {
		return
	}

	if node.triangles != nil {
		for _, idx := range node.triangles {
			if t, ok := raycastTriangle(origin, direction, &m.triangles[idx], *best); ok {
				*best = t
				*bestTri = idx
			}
		}
		return
	}

	m.raycastNode(node.left, origin, direction, best, bestTri)
	m.raycastNode(node.right, origin, direction, best, bestTri)
}

// TriangleCount returns the number of triangles in the mesh
func (m *TriangleMesh) TriangleCount() int {
	return len(m.triangles)
}

// Triangles returns a copy of the mesh triangles, for drawing.
func (m *TriangleMesh) Triangles() []Triangle {
	return append([]Triangle(nil), m.triangles...)
}

// Bounds returns the AABB of the entire mesh
func (m *TriangleMesh) Bounds() AABB {
	if m.root == nil {
		return AABB{}
	}
	return m.root.bounds
}
