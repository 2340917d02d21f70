// Package pb contains hand-maintained protobuf bindings for fusion.proto.
// The wire schema is defined in fusion.proto; the descriptor is assembled
// programmatically at init so the bindings stay self-contained. Keep this
// file in sync with fusion.proto when the schema changes.
package pb

import (
	"reflect"
	"sync"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/runtime/protoimpl"
	"google.golang.org/protobuf/types/descriptorpb"
)

// StreamRequest selects which update kinds a client wants to receive.
type StreamRequest struct {
	state         protoimpl.MessageState
	sizeCache     protoimpl.SizeCache
	unknownFields protoimpl.UnknownFields

	ClientId          string `protobuf:"bytes,1,opt,name=client_id,json=clientId,proto3" json:"client_id,omitempty"`
	IncludePoses      bool   `protobuf:"varint,2,opt,name=include_poses,json=includePoses,proto3" json:"include_poses,omitempty"`
	IncludeTwists     bool   `protobuf:"varint,3,opt,name=include_twists,json=includeTwists,proto3" json:"include_twists,omitempty"`
	IncludeTransforms bool   `protobuf:"varint,4,opt,name=include_transforms,json=includeTransforms,proto3" json:"include_transforms,omitempty"`
}

func (x *StreamRequest) Reset() {
	*x = StreamRequest{}
	mi := &file_fusion_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *StreamRequest) String() string { return protoimpl.X.MessageStringOf(x) }

func (*StreamRequest) ProtoMessage() {}

func (x *StreamRequest) ProtoReflect() protoreflect.Message {
	mi := &file_fusion_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

func (x *StreamRequest) GetClientId() string {
	if x != nil {
		return x.ClientId
	}
	return ""
}

func (x *StreamRequest) GetIncludePoses() bool {
	if x != nil {
		return x.IncludePoses
	}
	return false
}

func (x *StreamRequest) GetIncludeTwists() bool {
	if x != nil {
		return x.IncludeTwists
	}
	return false
}

func (x *StreamRequest) GetIncludeTransforms() bool {
	if x != nil {
		return x.IncludeTransforms
	}
	return false
}

type Vector3 struct {
	state         protoimpl.MessageState
	sizeCache     protoimpl.SizeCache
	unknownFields protoimpl.UnknownFields

	X float64 `protobuf:"fixed64,1,opt,name=x,proto3" json:"x,omitempty"`
	Y float64 `protobuf:"fixed64,2,opt,name=y,proto3" json:"y,omitempty"`
	Z float64 `protobuf:"fixed64,3,opt,name=z,proto3" json:"z,omitempty"`
}

func (x *Vector3) Reset() {
	*x = Vector3{}
	mi := &file_fusion_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *Vector3) String() string { return protoimpl.X.MessageStringOf(x) }

func (*Vector3) ProtoMessage() {}

func (x *Vector3) ProtoReflect() protoreflect.Message {
	mi := &file_fusion_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

func (x *Vector3) GetX() float64 {
	if x != nil {
		return x.X
	}
	return 0
}

func (x *Vector3) GetY() float64 {
	if x != nil {
		return x.Y
	}
	return 0
}

func (x *Vector3) GetZ() float64 {
	if x != nil {
		return x.Z
	}
	return 0
}

type Quaternion struct {
	state         protoimpl.MessageState
	sizeCache     protoimpl.SizeCache
	unknownFields protoimpl.UnknownFields

	X float64 `protobuf:"fixed64,1,opt,name=x,proto3" json:"x,omitempty"`
	Y float64 `protobuf:"fixed64,2,opt,name=y,proto3" json:"y,omitempty"`
	Z float64 `protobuf:"fixed64,3,opt,name=z,proto3" json:"z,omitempty"`
	W float64 `protobuf:"fixed64,4,opt,name=w,proto3" json:"w,omitempty"`
}

func (x *Quaternion) Reset() {
	*x = Quaternion{}
	mi := &file_fusion_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *Quaternion) String() string { return protoimpl.X.MessageStringOf(x) }

func (*Quaternion) ProtoMessage() {}

func (x *Quaternion) ProtoReflect() protoreflect.Message {
	mi := &file_fusion_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

func (x *Quaternion) GetX() float64 {
	if x != nil {
		return x.X
	}
	return 0
}

func (x *Quaternion) GetY() float64 {
	if x != nil {
		return x.Y
	}
	return 0
}

func (x *Quaternion) GetZ() float64 {
	if x != nil {
		return x.Z
	}
	return 0
}

func (x *Quaternion) GetW() float64 {
	if x != nil {
		return x.W
	}
	return 0
}

// FusedPose is a blended position estimate with a row-major 6x6 covariance.
type FusedPose struct {
	state         protoimpl.MessageState
	sizeCache     protoimpl.SizeCache
	unknownFields protoimpl.UnknownFields

	StampNs     int64       `protobuf:"varint,1,opt,name=stamp_ns,json=stampNs,proto3" json:"stamp_ns,omitempty"`
	FrameId     string      `protobuf:"bytes,2,opt,name=frame_id,json=frameId,proto3" json:"frame_id,omitempty"`
	Position    *Vector3    `protobuf:"bytes,3,opt,name=position,proto3" json:"position,omitempty"`
	Orientation *Quaternion `protobuf:"bytes,4,opt,name=orientation,proto3" json:"orientation,omitempty"`
	Covariance  []float64   `protobuf:"fixed64,5,rep,packed,name=covariance,proto3" json:"covariance,omitempty"`
}

func (x *FusedPose) Reset() {
	*x = FusedPose{}
	mi := &file_fusion_proto_msgTypes[3]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *FusedPose) String() string { return protoimpl.X.MessageStringOf(x) }

func (*FusedPose) ProtoMessage() {}

func (x *FusedPose) ProtoReflect() protoreflect.Message {
	mi := &file_fusion_proto_msgTypes[3]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

func (x *FusedPose) GetStampNs() int64 {
	if x != nil {
		return x.StampNs
	}
	return 0
}

func (x *FusedPose) GetFrameId() string {
	if x != nil {
		return x.FrameId
	}
	return ""
}

func (x *FusedPose) GetPosition() *Vector3 {
	if x != nil {
		return x.Position
	}
	return nil
}

func (x *FusedPose) GetOrientation() *Quaternion {
	if x != nil {
		return x.Orientation
	}
	return nil
}

func (x *FusedPose) GetCovariance() []float64 {
	if x != nil {
		return x.Covariance
	}
	return nil
}

// FusedTwist is a blended angular rate with a row-major 6x6 covariance.
type FusedTwist struct {
	state         protoimpl.MessageState
	sizeCache     protoimpl.SizeCache
	unknownFields protoimpl.UnknownFields

	StampNs    int64     `protobuf:"varint,1,opt,name=stamp_ns,json=stampNs,proto3" json:"stamp_ns,omitempty"`
	FrameId    string    `protobuf:"bytes,2,opt,name=frame_id,json=frameId,proto3" json:"frame_id,omitempty"`
	AngularZ   float64   `protobuf:"fixed64,3,opt,name=angular_z,json=angularZ,proto3" json:"angular_z,omitempty"`
	Covariance []float64 `protobuf:"fixed64,4,rep,packed,name=covariance,proto3" json:"covariance,omitempty"`
}

func (x *FusedTwist) Reset() {
	*x = FusedTwist{}
	mi := &file_fusion_proto_msgTypes[4]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *FusedTwist) String() string { return protoimpl.X.MessageStringOf(x) }

func (*FusedTwist) ProtoMessage() {}

func (x *FusedTwist) ProtoReflect() protoreflect.Message {
	mi := &file_fusion_proto_msgTypes[4]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

func (x *FusedTwist) GetStampNs() int64 {
	if x != nil {
		return x.StampNs
	}
	return 0
}

func (x *FusedTwist) GetFrameId() string {
	if x != nil {
		return x.FrameId
	}
	return ""
}

func (x *FusedTwist) GetAngularZ() float64 {
	if x != nil {
		return x.AngularZ
	}
	return 0
}

func (x *FusedTwist) GetCovariance() []float64 {
	if x != nil {
		return x.Covariance
	}
	return nil
}

type Transform struct {
	state         protoimpl.MessageState
	sizeCache     protoimpl.SizeCache
	unknownFields protoimpl.UnknownFields

	StampNs     int64       `protobuf:"varint,1,opt,name=stamp_ns,json=stampNs,proto3" json:"stamp_ns,omitempty"`
	ParentFrame string      `protobuf:"bytes,2,opt,name=parent_frame,json=parentFrame,proto3" json:"parent_frame,omitempty"`
	ChildFrame  string      `protobuf:"bytes,3,opt,name=child_frame,json=childFrame,proto3" json:"child_frame,omitempty"`
	Translation *Vector3    `protobuf:"bytes,4,opt,name=translation,proto3" json:"translation,omitempty"`
	Rotation    *Quaternion `protobuf:"bytes,5,opt,name=rotation,proto3" json:"rotation,omitempty"`
}

func (x *Transform) Reset() {
	*x = Transform{}
	mi := &file_fusion_proto_msgTypes[5]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *Transform) String() string { return protoimpl.X.MessageStringOf(x) }

func (*Transform) ProtoMessage() {}

func (x *Transform) ProtoReflect() protoreflect.Message {
	mi := &file_fusion_proto_msgTypes[5]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

func (x *Transform) GetStampNs() int64 {
	if x != nil {
		return x.StampNs
	}
	return 0
}

func (x *Transform) GetParentFrame() string {
	if x != nil {
		return x.ParentFrame
	}
	return ""
}

func (x *Transform) GetChildFrame() string {
	if x != nil {
		return x.ChildFrame
	}
	return ""
}

func (x *Transform) GetTranslation() *Vector3 {
	if x != nil {
		return x.Translation
	}
	return nil
}

func (x *Transform) GetRotation() *Quaternion {
	if x != nil {
		return x.Rotation
	}
	return nil
}

// FusionUpdate carries exactly one of pose, twist or transform.
type FusionUpdate struct {
	state         protoimpl.MessageState
	sizeCache     protoimpl.SizeCache
	unknownFields protoimpl.UnknownFields

	Sequence  uint64      `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	EmittedNs int64       `protobuf:"varint,2,opt,name=emitted_ns,json=emittedNs,proto3" json:"emitted_ns,omitempty"`
	Pose      *FusedPose  `protobuf:"bytes,3,opt,name=pose,proto3" json:"pose,omitempty"`
	Twist     *FusedTwist `protobuf:"bytes,4,opt,name=twist,proto3" json:"twist,omitempty"`
	Transform *Transform  `protobuf:"bytes,5,opt,name=transform,proto3" json:"transform,omitempty"`
}

func (x *FusionUpdate) Reset() {
	*x = FusionUpdate{}
	mi := &file_fusion_proto_msgTypes[6]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *FusionUpdate) String() string { return protoimpl.X.MessageStringOf(x) }

func (*FusionUpdate) ProtoMessage() {}

func (x *FusionUpdate) ProtoReflect() protoreflect.Message {
	mi := &file_fusion_proto_msgTypes[6]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

func (x *FusionUpdate) GetSequence() uint64 {
	if x != nil {
		return x.Sequence
	}
	return 0
}

func (x *FusionUpdate) GetEmittedNs() int64 {
	if x != nil {
		return x.EmittedNs
	}
	return 0
}

func (x *FusionUpdate) GetPose() *FusedPose {
	if x != nil {
		return x.Pose
	}
	return nil
}

func (x *FusionUpdate) GetTwist() *FusedTwist {
	if x != nil {
		return x.Twist
	}
	return nil
}

func (x *FusionUpdate) GetTransform() *Transform {
	if x != nil {
		return x.Transform
	}
	return nil
}

// File_fusion_proto is the compiled descriptor for fusion.proto.
var File_fusion_proto protoreflect.FileDescriptor

var file_fusion_proto_msgTypes = make([]protoimpl.MessageInfo, 7)

var file_fusion_proto_goTypes = []any{
	(*StreamRequest)(nil), // 0: fusion.v1.StreamRequest
	(*Vector3)(nil),       // 1: fusion.v1.Vector3
	(*Quaternion)(nil),    // 2: fusion.v1.Quaternion
	(*FusedPose)(nil),     // 3: fusion.v1.FusedPose
	(*FusedTwist)(nil),    // 4: fusion.v1.FusedTwist
	(*Transform)(nil),     // 5: fusion.v1.Transform
	(*FusionUpdate)(nil),  // 6: fusion.v1.FusionUpdate
}

var file_fusion_proto_depIdxs = []int32{
	1, // 0: fusion.v1.FusedPose.position:type_name -> fusion.v1.Vector3
	2, // 1: fusion.v1.FusedPose.orientation:type_name -> fusion.v1.Quaternion
	1, // 2: fusion.v1.Transform.translation:type_name -> fusion.v1.Vector3
	2, // 3: fusion.v1.Transform.rotation:type_name -> fusion.v1.Quaternion
	3, // 4: fusion.v1.FusionUpdate.pose:type_name -> fusion.v1.FusedPose
	4, // 5: fusion.v1.FusionUpdate.twist:type_name -> fusion.v1.FusedTwist
	5, // 6: fusion.v1.FusionUpdate.transform:type_name -> fusion.v1.Transform
	0, // 7: fusion.v1.FusionService.StreamUpdates:input_type -> fusion.v1.StreamRequest
	6, // 8: fusion.v1.FusionService.StreamUpdates:output_type -> fusion.v1.FusionUpdate
	8, // [8:9] is the sub-list for method output_type
	7, // [7:8] is the sub-list for method input_type
	7, // [7:7] is the sub-list for extension type_name
	7, // [7:7] is the sub-list for extension extendee
	0, // [0:7] is the sub-list for field type_name
}

// file_fusion_proto_descriptor assembles the FileDescriptorProto matching
// fusion.proto. Field numbers and ordering must match the schema exactly.
func file_fusion_proto_descriptor() *descriptorpb.FileDescriptorProto {
	optional := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	repeated := descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	typDouble := descriptorpb.FieldDescriptorProto_TYPE_DOUBLE
	typInt64 := descriptorpb.FieldDescriptorProto_TYPE_INT64
	typUint64 := descriptorpb.FieldDescriptorProto_TYPE_UINT64
	typBool := descriptorpb.FieldDescriptorProto_TYPE_BOOL
	typString := descriptorpb.FieldDescriptorProto_TYPE_STRING
	typMessage := descriptorpb.FieldDescriptorProto_TYPE_MESSAGE

	scalar := func(name, jsonName string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
		return &descriptorpb.FieldDescriptorProto{
			Name:     proto.String(name),
			JsonName: proto.String(jsonName),
			Number:   proto.Int32(number),
			Label:    optional.Enum(),
			Type:     typ.Enum(),
		}
	}
	msgField := func(name, jsonName string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
		return &descriptorpb.FieldDescriptorProto{
			Name:     proto.String(name),
			JsonName: proto.String(jsonName),
			Number:   proto.Int32(number),
			Label:    optional.Enum(),
			Type:     typMessage.Enum(),
			TypeName: proto.String(typeName),
		}
	}
	covField := func(number int32) *descriptorpb.FieldDescriptorProto {
		return &descriptorpb.FieldDescriptorProto{
			Name:     proto.String("covariance"),
			JsonName: proto.String("covariance"),
			Number:   proto.Int32(number),
			Label:    repeated.Enum(),
			Type:     typDouble.Enum(),
		}
	}

	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("internal/fusion/stream/pb/fusion.proto"),
		Package: proto.String("fusion.v1"),
		Syntax:  proto.String("proto3"),
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/banshee-data/pose.fusion/internal/fusion/stream/pb"),
		},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("StreamRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("client_id", "clientId", 1, typString),
					scalar("include_poses", "includePoses", 2, typBool),
					scalar("include_twists", "includeTwists", 3, typBool),
					scalar("include_transforms", "includeTransforms", 4, typBool),
				},
			},
			{
				Name: proto.String("Vector3"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("x", "x", 1, typDouble),
					scalar("y", "y", 2, typDouble),
					scalar("z", "z", 3, typDouble),
				},
			},
			{
				Name: proto.String("Quaternion"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("x", "x", 1, typDouble),
					scalar("y", "y", 2, typDouble),
					scalar("z", "z", 3, typDouble),
					scalar("w", "w", 4, typDouble),
				},
			},
			{
				Name: proto.String("FusedPose"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("stamp_ns", "stampNs", 1, typInt64),
					scalar("frame_id", "frameId", 2, typString),
					msgField("position", "position", 3, ".fusion.v1.Vector3"),
					msgField("orientation", "orientation", 4, ".fusion.v1.Quaternion"),
					covField(5),
				},
			},
			{
				Name: proto.String("FusedTwist"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("stamp_ns", "stampNs", 1, typInt64),
					scalar("frame_id", "frameId", 2, typString),
					scalar("angular_z", "angularZ", 3, typDouble),
					covField(4),
				},
			},
			{
				Name: proto.String("Transform"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("stamp_ns", "stampNs", 1, typInt64),
					scalar("parent_frame", "parentFrame", 2, typString),
					scalar("child_frame", "childFrame", 3, typString),
					msgField("translation", "translation", 4, ".fusion.v1.Vector3"),
					msgField("rotation", "rotation", 5, ".fusion.v1.Quaternion"),
				},
			},
			{
				Name: proto.String("FusionUpdate"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("sequence", "sequence", 1, typUint64),
					scalar("emitted_ns", "emittedNs", 2, typInt64),
					msgField("pose", "pose", 3, ".fusion.v1.FusedPose"),
					msgField("twist", "twist", 4, ".fusion.v1.FusedTwist"),
					msgField("transform", "transform", 5, ".fusion.v1.Transform"),
				},
			},
		},
		Service: []*descriptorpb.ServiceDescriptorProto{
			{
				Name: proto.String("FusionService"),
				Method: []*descriptorpb.MethodDescriptorProto{
					{
						Name:            proto.String("StreamUpdates"),
						InputType:       proto.String(".fusion.v1.StreamRequest"),
						OutputType:      proto.String(".fusion.v1.FusionUpdate"),
						ServerStreaming: proto.Bool(true),
					},
				},
			},
		},
	}
}

var file_fusion_proto_rawDesc []byte

func init() { file_fusion_proto_init() }

var file_fusion_proto_initOnce sync.Once

func file_fusion_proto_init() {
	file_fusion_proto_initOnce.Do(func() {
		raw, err := proto.Marshal(file_fusion_proto_descriptor())
		if err != nil {
			panic("pb: failed to marshal fusion.proto descriptor: " + err.Error())
		}
		file_fusion_proto_rawDesc = raw

		type x struct{}
		out := protoimpl.TypeBuilder{
			File: protoimpl.DescBuilder{
				GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
				RawDescriptor: file_fusion_proto_rawDesc,
				NumEnums:      0,
				NumMessages:   7,
				NumExtensions: 0,
				NumServices:   1,
			},
			GoTypes:           file_fusion_proto_goTypes,
			DependencyIndexes: file_fusion_proto_depIdxs,
			MessageInfos:      file_fusion_proto_msgTypes,
		}.Build()
		File_fusion_proto = out.File
		file_fusion_proto_goTypes = nil
		file_fusion_proto_depIdxs = nil
	})
}
